package interfaces

// Service is implemented by every interface exposing the wallet store to the
// outside, the http/websocket one being the only one at the moment.
type Service interface {
	Start() error
	Stop()
}
