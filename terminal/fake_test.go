package terminal

import (
	"bytes"
	"io"
	"sync"
	"time"
)

// fakeBackend records everything the driver does to the device
type fakeBackend struct {
	mu sync.Mutex

	initErr  error
	writeErr error // returned by every Write once set
	failNth  int   // fail only the Nth write (1-based), 0 disables

	width, height int

	raw       bool
	initCalls int
	finiCalls int
	writes    int
	out       bytes.Buffer

	input chan []byte
	eof   bool // Read reports end of input
	reads int
}

func newFakeBackend(w, h int) *fakeBackend {
	return &fakeBackend{width: w, height: h, input: make(chan []byte, 16)}
}

func (f *fakeBackend) Init() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initCalls++
	if f.initErr != nil {
		return f.initErr
	}
	f.raw = true
	return nil
}

func (f *fakeBackend) Fini() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finiCalls++
	f.raw = false
	return nil
}

func (f *fakeBackend) Size() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.width, f.height
}

func (f *fakeBackend) Write(p []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.writeErr != nil || (f.failNth > 0 && f.writes == f.failNth) {
		if f.writeErr != nil {
			return f.writeErr
		}
		return errWriteFailed
	}
	f.out.Write(p)
	return nil
}

func (f *fakeBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	f.mu.Lock()
	f.reads++
	eof := f.eof
	f.mu.Unlock()
	if eof {
		return nil, io.EOF
	}

	select {
	case <-stopCh:
		return nil, nil
	case data := <-f.input:
		return data, nil
	case <-time.After(20 * time.Millisecond):
		return nil, nil
	}
}

func (f *fakeBackend) SetResizeHandler(func(width, height int)) {}

func (f *fakeBackend) isRaw() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.raw
}

func (f *fakeBackend) output() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.String()
}

func (f *fakeBackend) readCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

func (f *fakeBackend) setWriteErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeErr = err
}
