package common

// PublishableKeyHeaderName carries the commerce backend publishable API key.
const PublishableKeyHeaderName = "x-publishable-api-key"

// RequestIDHeaderName is echoed back on every HTTP response.
const RequestIDHeaderName = "X-Request-Id"

// AuthorizationHeaderName carries operator bearer tokens.
const AuthorizationHeaderName = "Authorization"
