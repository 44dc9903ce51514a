// Package progress draws terminal progress bars for uploads.
package progress

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"transcribe-ui/internal/app/api/backend"
)

type Config struct {
	Enabled bool
	Writer  io.Writer
}

type Manager struct {
	container *mpb.Progress
	enabled   bool
	mu        sync.Mutex
}

type Bar struct {
	bar     *mpb.Bar
	enabled bool
}

func NewManager(config Config) *Manager {
	if !config.Enabled {
		return &Manager{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithWaitGroup(&sync.WaitGroup{}),
	)

	return &Manager{
		container: container,
		enabled:   true,
	}
}

// CreateBytesBar adds a bar measured in bytes
func (m *Manager) CreateBytesBar(total int64, description string) *Bar {
	if !m.enabled || m.container == nil {
		return &Bar{enabled: false}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	bar := m.container.AddBar(total,
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.CountersKibiByte("% .1f / % .1f", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%.1f", decor.WCSyncSpace),
			decor.OnComplete(
				decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncWidth), " ✓ ",
			),
		),
	)

	return &Bar{
		bar:     bar,
		enabled: true,
	}
}

// ProxyReader counts bytes read from r on the bar
func (b *Bar) ProxyReader(r io.Reader) io.Reader {
	if !b.enabled || b.bar == nil {
		return r
	}
	return b.bar.ProxyReader(r)
}

// Complete marks the bar done at its current position
func (b *Bar) Complete() {
	if b.enabled && b.bar != nil {
		b.bar.SetTotal(b.bar.Current(), true)
	}
}

// Abort removes the bar after a failed upload
func (b *Bar) Abort() {
	if b.enabled && b.bar != nil {
		b.bar.Abort(false)
	}
}

// Uploader sends files and reports the encoded request body to a ProgressFunc
type Uploader interface {
	UploadWithProgress(ctx context.Context, files []backend.File, progress backend.ProgressFunc) error
}

// Upload sends files through u with a byte bar for the request body
func (m *Manager) Upload(ctx context.Context, u Uploader, files []backend.File, description string) error {
	var bar *Bar
	err := u.UploadWithProgress(ctx, files, func(body io.Reader, size int64) io.Reader {
		bar = m.CreateBytesBar(size, description)
		return bar.ProxyReader(body)
	})
	if bar != nil {
		if err != nil {
			bar.Abort()
		} else {
			bar.Complete()
		}
	}
	return err
}

func (m *Manager) Wait() {
	if m.enabled && m.container != nil {
		m.container.Wait()
	}
}

func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func ShouldShowProgress(forced bool) bool {
	if forced {
		return true
	}

	return IsTTY(os.Stderr)
}
