// Package assistant is a client for assistant backends that expose the
// chat and cancel JSON endpoints.
//
// # Overview
//
// A Client holds the backend URL, the header policy and a request timeout.
// Thread handles obtained from it build request bodies and send them:
//
//   - POST {baseURL}/api/chat   with threadId, messages and optional fields
//   - POST {baseURL}/api/cancel with threadId
//
// Responses are returned as *http.Response without inspecting the body.
// Any status outside 2xx is reported as *HTTPError.
//
// # Execution Modes
//
// Every operation has a blocking form (Chat, Cancel, Request) and a
// non-blocking form (ChatAsync, CancelAsync, RequestAsync) that delivers a
// single Result on a channel. The two modes share configuration but use
// separate http.Client values, each created on first use. CloseSync and
// Close release them.
//
// # Headers
//
// Headers come from a HeaderSource:
//
//   - StaticHeaders: a fixed map
//   - HeaderFunc: computed per request, usable from both modes
//   - AsyncHeaderFunc: computed with a context, async calls only
//
// Content-Type: application/json is added unless the source already sets it.
// A source returning a nil map falls back to the default headers.
//
// # Usage
//
//	client := assistant.NewClient("https://api.example.com",
//	    assistant.WithHeaders(assistant.StaticHeaders{"Authorization": "Bearer " + token}),
//	    assistant.WithTimeout(30*time.Second),
//	)
//	err := assistant.Scoped(client, func(c *assistant.Client) error {
//	    resp, err := c.Thread("thread-123").Chat(ctx,
//	        []assistant.Message{assistant.UserMessage(assistant.TextPart("Hello"))},
//	        assistant.WithSystem("You are helpful"),
//	    )
//	    if err != nil {
//	        return err
//	    }
//	    defer resp.Body.Close()
//	    return nil
//	})
package assistant
