// utils/http.go
package utils

import (
	"net/http"
	"time"
)

// HTTPClient is shared by every outbound call (geocoding). The timeout
// bounds how long a user write can stall on the external resolver.
var HTTPClient = &http.Client{
	Timeout: 10 * time.Second,
}
