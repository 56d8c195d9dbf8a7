// Package memory holds the conversation transcript.
//
// Model:
//   - A Transcript is an ordered, append-only list of role-tagged messages.
//   - It lives in process memory only and is discarded on exit.
package memory
