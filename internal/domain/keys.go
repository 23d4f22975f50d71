package domain

// KeyRequestID is the gin context key holding the per-request UUID.
const KeyRequestID = "RequestID"
