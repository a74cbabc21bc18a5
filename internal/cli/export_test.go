package cli

// Export internal functions for testing.

// RunConfigSet exports runConfigSet for testing.
var RunConfigSet = runConfigSet

// RunConfigGet exports runConfigGet for testing.
var RunConfigGet = runConfigGet

// RunConfigList exports runConfigList for testing.
var RunConfigList = runConfigList

// RunNarrative exports runNarrative for testing.
var RunNarrative = runNarrative

// RunDeck exports runDeck for testing.
var RunDeck = runDeck

// DeckOptions exports deckOptions for testing.
type DeckOptions = deckOptions

// ParseMetaPromptOptions exports parseMetaPromptOptions for testing.
var ParseMetaPromptOptions = parseMetaPromptOptions

// ParseImagesOptions exports parseImagesOptions for testing.
var ParseImagesOptions = parseImagesOptions

// WriteOutput exports writeOutput for testing.
var WriteOutput = writeOutput
