package ai

import "errors"

// ErrQuotaExceeded indicates the LLM provider rejected the call with a rate or quota limit (HTTP 429).
var ErrQuotaExceeded = errors.New("ai quota exceeded")
