package system

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

type mockNode struct {
	data []byte
	dir  bool
}

// MockFS is an in-memory FileSystem. Writing a file requires its parent
// directory to exist, as on a real filesystem.
type MockFS struct {
	mu    sync.RWMutex
	nodes map[string]mockNode

	// Set to make the corresponding operation fail
	ReadFileErr  error
	WriteFileErr error
	MkdirAllErr  error

	// Writes counts successful WriteFile calls per path.
	Writes map[string]int
}

// NewMockFS creates an empty MockFS.
func NewMockFS() *MockFS {
	return &MockFS{
		nodes:  map[string]mockNode{"/": {dir: true}},
		Writes: make(map[string]int),
	}
}

// AddFile creates a file and its parent directories.
func (m *MockFS) AddFile(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mkdirs(filepath.Dir(path))
	m.nodes[path] = mockNode{data: data}
}

// AddDir creates a directory and its parents.
func (m *MockFS) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mkdirs(path)
}

// GetFile returns a file's contents.
func (m *MockFS) GetFile(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	node, ok := m.nodes[path]
	if !ok || node.dir {
		return nil, false
	}
	return node.data, true
}

// mkdirs must be called with the lock held.
func (m *MockFS) mkdirs(path string) {
	for p := filepath.Clean(path); ; p = filepath.Dir(p) {
		if _, ok := m.nodes[p]; !ok {
			m.nodes[p] = mockNode{dir: true}
		}
		if parent := filepath.Dir(p); parent == p || p == "." {
			return
		}
	}
}

func (m *MockFS) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.GetFile(path)
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MockFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if m.WriteFileErr != nil {
		return m.WriteFileErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if parent, ok := m.nodes[filepath.Dir(path)]; !ok || !parent.dir {
		return fs.ErrNotExist
	}
	m.nodes[path] = mockNode{data: append([]byte(nil), data...)}
	m.Writes[path]++
	return nil
}

func (m *MockFS) MkdirAll(path string, perm fs.FileMode) error {
	if m.MkdirAllErr != nil {
		return m.MkdirAllErr
	}
	m.AddDir(path)
	return nil
}

func (m *MockFS) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.nodes[path]
	return ok
}

// MockCommand records an executed command.
type MockCommand struct {
	Name string
	Args []string
}

// String renders the command as a single space-separated line.
func (c MockCommand) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// MockResponse is the canned result of a command.
type MockResponse struct {
	Output []byte
	Err    error
}

// MockExecutor records commands and answers them from Responses.
type MockExecutor struct {
	mu sync.Mutex

	// Commands holds every executed command in order.
	Commands []MockCommand

	// Responses is keyed by a command line prefix such as "caddy" or
	// "caddy reload". The longest matching prefix wins.
	Responses map[string]MockResponse

	// DefaultResponse answers commands that match no prefix.
	DefaultResponse MockResponse

	// InteractiveErr, when set, is returned by every ExecuteInteractive call.
	InteractiveErr error
}

// NewMockExecutor creates a MockExecutor that succeeds with no output.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{Responses: make(map[string]MockResponse)}
}

// AddResponse sets the response for commands starting with prefix.
func (m *MockExecutor) AddResponse(prefix string, output []byte, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[prefix] = MockResponse{Output: output, Err: err}
}

func (m *MockExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	resp := m.record(name, args)
	return resp.Output, resp.Err
}

func (m *MockExecutor) ExecuteInteractive(ctx context.Context, name string, args ...string) error {
	resp := m.record(name, args)
	if m.InteractiveErr != nil {
		return m.InteractiveErr
	}
	return resp.Err
}

func (m *MockExecutor) record(name string, args []string) MockResponse {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Commands = append(m.Commands, MockCommand{Name: name, Args: args})

	words := append([]string{name}, args...)
	for n := len(words); n > 0; n-- {
		if resp, ok := m.Responses[strings.Join(words[:n], " ")]; ok {
			return resp
		}
	}
	return m.DefaultResponse
}

// LastCommand returns the most recently executed command.
func (m *MockExecutor) LastCommand() (MockCommand, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Commands) == 0 {
		return MockCommand{}, false
	}
	return m.Commands[len(m.Commands)-1], true
}

// CountCalls returns how many commands ran the named program.
func (m *MockExecutor) CountCalls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Commands {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Reset forgets the recorded commands.
func (m *MockExecutor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands = nil
}

// MockEnv is a fixed Environment.
type MockEnv struct {
	Vars     map[string]string
	Cwd      string
	CwdErr   error
	Home     string
	Terminal bool
}

// NewMockEnv creates a MockEnv in cwd with home /home/user and no variables.
func NewMockEnv(cwd string) *MockEnv {
	return &MockEnv{
		Vars: make(map[string]string),
		Cwd:  cwd,
		Home: "/home/user",
	}
}

func (e *MockEnv) LookupEnv(key string) (string, bool) {
	v, ok := e.Vars[key]
	return v, ok
}

func (e *MockEnv) Getwd() (string, error) {
	if e.CwdErr != nil {
		return "", e.CwdErr
	}
	return e.Cwd, nil
}

func (e *MockEnv) UserHomeDir() (string, error) {
	return e.Home, nil
}

func (e *MockEnv) IsTerminal() bool {
	return e.Terminal
}
