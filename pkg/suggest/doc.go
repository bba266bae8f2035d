// Package suggest asks the completion model for assistant metadata and
// decodes the reply into typed suggestions.
//
// A Requester performs exactly one completion call per operation. Every
// failure, from transport errors to malformed replies, is reported as an
// *Error whose Kind tells the caller which notice to show.
package suggest
