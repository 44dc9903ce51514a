// Package testutil provides shared test helpers for transcribe-ui.
//
//   - FakeBackend (fake_backend.go): an httptest server speaking the transcription
//     service's list, upload, search and health endpoints, recording every request
//     and able to inject failures.
//   - MockBackend (mock_services.go): a testify mock of the client used by the view.
//   - Fixtures (fixtures.go): sample transcription records.
//
// # Usage
//
//	func TestSomething(t *testing.T) {
//	    fb := testutil.NewFakeBackend(t, testutil.Transcriptions()...)
//	    client := backend.NewClient(backend.ClientConfig{BaseURL: fb.URL()})
//	    // ...
//	    assert.Equal(t, 1, fb.CountRequests("/transcriptions"))
//	}
package testutil
