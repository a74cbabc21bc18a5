package imagegen

// Exports for testing.

var (
	WithFalHTTPClient    = withFalHTTPClient
	WithFalMaxBody       = withFalMaxBody
	WithContentGenerator = withContentGenerator
	ShouldRetry          = shouldRetry
	ToPNG                = toPNG
)
