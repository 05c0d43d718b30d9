package notify

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"farm-animals/internal/domain/animals"

	"go.uber.org/zap"
)

// Log deja cada aviso en el log estructurado (lado servidor del BFF).
type Log struct {
	log *zap.Logger
}

func NewLog(log *zap.Logger) *Log {
	if log == nil {
		log = zap.NewNop()
	}
	return &Log{log: log.Named("notice")}
}

func (n *Log) Notify(_ context.Context, notice animals.Notice) {
	fields := []zap.Field{zap.String("severity", string(notice.Severity)), zap.String("title", notice.Title)}
	switch notice.Severity {
	case animals.SeverityError:
		n.log.Error(notice.Message, fields...)
	case animals.SeverityWarning:
		n.log.Warn(notice.Message, fields...)
	default:
		n.log.Info(notice.Message, fields...)
	}
}

// Recorder guarda avisos y navegaciones en orden.
type Recorder struct {
	mu      sync.Mutex
	notices []animals.Notice
	routes  []string
}

func (r *Recorder) Notify(_ context.Context, n animals.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *Recorder) Navigate(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

func (r *Recorder) Notices() []animals.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]animals.Notice(nil), r.notices...)
}

func (r *Recorder) Routes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.routes...)
}

// Multi reparte cada aviso a varios notifiers.
type Multi []animals.Notifier

func (m Multi) Notify(ctx context.Context, n animals.Notice) {
	for _, x := range m {
		if x != nil {
			x.Notify(ctx, n)
		}
	}
}

// Writer imprime los avisos para el CLI: "[warning] Atención: mensaje".
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

func (p *Writer) Notify(_ context.Context, n animals.Notice) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n.Title != "" {
		fmt.Fprintf(p.w, "[%s] %s: %s\n", n.Severity, n.Title, n.Message)
		return
	}
	fmt.Fprintf(p.w, "[%s] %s\n", n.Severity, n.Message)
}

func (p *Writer) Navigate(route string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "-> %s\n", route)
}

// Static responde siempre lo mismo (flag --yes del CLI).
type Static bool

func (s Static) Confirm(context.Context, string) (bool, error) { return bool(s), nil }

// Prompt pregunta por terminal; solo "s", "si", "sí", "y" o "yes" confirman.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

func (p *Prompt) Confirm(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(p.out, "%s [s/N]: ", message)
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "si", "sí", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
