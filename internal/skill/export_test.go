package skill

// Exports for testing.

var WithHTTPClient = withHTTPClient
