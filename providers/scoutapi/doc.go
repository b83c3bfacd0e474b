// Package scoutapi is the HTTP client for the Concert Scout agent backend.
//
// The backend runs the recommendation agents and answers [Client.Chat] with a
// single text blob in ChatResponse.Response; feed that text to scout.Parse.
// Sessions keep the conversation state between follow-up questions.
//
// Non-2xx responses are returned as *[APIError], which tells quota
// exhaustion and server failures apart:
//
//	resp, err := client.Chat(ctx, scoutapi.ChatRequest{Message: "Concerts in Seattle"})
//	var apiErr *scoutapi.APIError
//	if errors.As(err, &apiErr) && apiErr.IsQuotaExceeded {
//	    // back off
//	}
package scoutapi
