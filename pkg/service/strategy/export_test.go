package strategy

// BuildResponseSchema is exported for testing
var BuildResponseSchema = buildResponseSchema
