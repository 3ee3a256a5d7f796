// Package httputil provides retry support for upstream data clients.
//
// External services (the Open Targets platform, bulk corpus mirrors) fail
// transiently; [Retry] and [RetryWithBackoff] wrap their calls with
// exponential backoff. Clients signal which failures are worth retrying by
// wrapping them in [RetryableError]:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    defer resp.Body.Close()
//	    if resp.StatusCode >= 500 {
//	        return &httputil.RetryableError{Err: fmt.Errorf("status %d", resp.StatusCode)}
//	    }
//	    return decode(resp.Body)
//	})
//
// Response caching is a separate concern, handled by the cache package's
// backends.
package httputil
