package cli

// PrintRadar is exported for testing
var PrintRadar = printRadar

// GetIndexConfig is exported for testing
var GetIndexConfig = getIndexConfig
