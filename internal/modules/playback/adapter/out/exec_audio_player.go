package out

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"tutorcast/internal/modules/playback/domain"
	playbackout "tutorcast/internal/modules/playback/port/out"
)

// ExecAudioPlayer plays each cue with an external command line player,
// one process at a time, and reports play and exit as audio events.
type ExecAudioPlayer struct {
	command   []string
	assetRoot string

	mu      sync.Mutex
	current *exec.Cmd

	events    chan domain.AudioEvent
	done      chan struct{}
	closeOnce sync.Once
}

func NewExecAudioPlayer(command []string, assetRoot string) playbackout.AudioOutput {
	return &ExecAudioPlayer{
		command:   command,
		assetRoot: assetRoot,
		events:    make(chan domain.AudioEvent, 8),
		done:      make(chan struct{}),
	}
}

// Target maps an asset path onto the asset root, which is a directory or a base URL.
func (p *ExecAudioPlayer) Target(assetPath string) string {
	if isRemote(p.assetRoot) {
		return strings.TrimRight(p.assetRoot, "/") + "/" + strings.TrimLeft(assetPath, "/")
	}
	return filepath.Join(p.assetRoot, filepath.FromSlash(strings.TrimLeft(assetPath, "/")))
}

func (p *ExecAudioPlayer) Play(_ context.Context, cue domain.Cue) error {
	if len(p.command) == 0 {
		return fmt.Errorf("audio player command is not configured")
	}
	target := p.Target(cue.Path)
	if !isRemote(p.assetRoot) {
		if _, err := os.Stat(target); err != nil {
			return fmt.Errorf("audio asset: %w", err)
		}
	}
	p.Stop()

	args := append(append([]string(nil), p.command[1:]...), target)
	cmd := exec.Command(p.command[0], args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start audio player: %w", err)
	}
	p.mu.Lock()
	p.current = cmd
	p.mu.Unlock()
	go p.wait(cmd, cue.Seq)
	return nil
}

func (p *ExecAudioPlayer) wait(cmd *exec.Cmd, seq uint64) {
	p.emit(domain.AudioEvent{Seq: seq, Kind: domain.AudioPlaying})
	err := cmd.Wait()

	p.mu.Lock()
	stopped := p.current != cmd
	if !stopped {
		p.current = nil
	}
	p.mu.Unlock()

	ev := domain.AudioEvent{Seq: seq, Kind: domain.AudioEnded}
	if err != nil && !stopped {
		ev = domain.AudioEvent{Seq: seq, Kind: domain.AudioFailed, Err: err.Error()}
	}
	p.emit(ev)
}

func (p *ExecAudioPlayer) emit(ev domain.AudioEvent) {
	select {
	case p.events <- ev:
	case <-p.done:
	}
}

func (p *ExecAudioPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return
	}
	if p.current.Process != nil {
		_ = p.current.Process.Kill()
	}
	p.current = nil
}

func (p *ExecAudioPlayer) Events() <-chan domain.AudioEvent {
	return p.events
}

func (p *ExecAudioPlayer) Close() error {
	p.closeOnce.Do(func() {
		close(p.done)
		p.Stop()
	})
	return nil
}

func isRemote(root string) bool {
	return strings.HasPrefix(root, "http://") || strings.HasPrefix(root, "https://")
}
