package workspace

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/kardolus/taskpilot/agent"
	"github.com/kardolus/taskpilot/internal/fsio"
)

const maxOpenFiles = 10

const (
	TypeNextJS  = "Next.js"
	TypeReact   = "React"
	TypeExpress = "Express"
	TypeNode    = "Node.js"
	TypeGo      = "Go"
	TypeRust    = "Rust"
	TypePython  = "Python"
)

// Provider describes the workspace a task runs in.
type Provider struct {
	root   string
	reader fsio.Reader
	debug  *zap.SugaredLogger

	currentFile string
	openFiles   []string
}

var _ agent.ContextProvider = &Provider{}

type Option func(*Provider)

// WithEditorState reports the file the user is looking at and the files they
// have open.
func WithEditorState(current string, open []string) Option {
	return func(p *Provider) {
		p.currentFile = current
		p.openFiles = append([]string(nil), open...)
	}
}

func WithDebugLogger(l *zap.SugaredLogger) Option {
	return func(p *Provider) {
		if l != nil {
			p.debug = l
		}
	}
}

func NewProvider(root string, reader fsio.Reader, opts ...Option) *Provider {
	p := &Provider{
		root:   root,
		reader: reader,
		debug:  zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Gather never fails on manifest problems; an unknown project type is empty.
func (p *Provider) Gather(ctx context.Context) (agent.ProjectContext, error) {
	if err := ctx.Err(); err != nil {
		return agent.ProjectContext{}, err
	}

	root, err := filepath.Abs(p.root)
	if err != nil {
		return agent.ProjectContext{}, err
	}

	open := p.openFiles
	if len(open) > maxOpenFiles {
		open = open[:maxOpenFiles]
	}

	pc := agent.ProjectContext{
		WorkspaceRoot: root,
		CurrentFile:   p.currentFile,
		OpenFiles:     append([]string(nil), open...),
		ProjectType:   p.detectType(root),
	}
	p.debug.Debugf("workspace: root=%q type=%q open_files=%d", pc.WorkspaceRoot, pc.ProjectType, len(pc.OpenFiles))
	return pc, nil
}

type sniffer struct {
	manifest string
	detect   func(data []byte) (string, bool)
}

// First manifest that exists decides; a broken one ends the search.
var sniffers = []sniffer{
	{"package.json", detectNode},
	{"go.mod", func([]byte) (string, bool) { return TypeGo, true }},
	{"Cargo.toml", detectTOML(TypeRust)},
	{"pyproject.toml", detectTOML(TypePython)},
	{"requirements.txt", func([]byte) (string, bool) { return TypePython, true }},
}

func (p *Provider) detectType(root string) string {
	for _, s := range sniffers {
		data, err := p.reader.ReadFile(filepath.Join(root, s.manifest))
		if err != nil {
			continue
		}
		kind, ok := s.detect(data)
		if !ok {
			p.debug.Debugf("workspace: unparsable manifest %s", s.manifest)
			return ""
		}
		return kind
	}
	return ""
}

type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func detectNode(data []byte) (string, bool) {
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", false
	}

	_, next := pkg.Dependencies["next"]
	_, devNext := pkg.DevDependencies["next"]

	switch {
	case next || devNext:
		return TypeNextJS, true
	case has(pkg.Dependencies, "react"):
		return TypeReact, true
	case has(pkg.Dependencies, "express"):
		return TypeExpress, true
	default:
		return TypeNode, true
	}
}

func detectTOML(kind string) func([]byte) (string, bool) {
	return func(data []byte) (string, bool) {
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return "", false
		}
		return kind, true
	}
}

func has(m map[string]string, key string) bool {
	_, ok := m[key]
	return ok
}
