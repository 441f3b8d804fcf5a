package config

import (
	stderrors "errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/firefly-engineering/portman/internal/errors"
	"github.com/firefly-engineering/portman/internal/system"
)

// Linked port modes
const (
	LinkModeProxy    = "proxy"
	LinkModeRedirect = "redirect"
)

// DefaultConfigTemplate is written by `portman config edit` when no config file exists yet.
const DefaultConfigTemplate = `# Inclusive port ranges that projects are allocated from
ranges = [[3000, 3999]]

# Ports inside the ranges that should never be allocated
reserved = []

# How linked ports reach their project: "proxy" or "redirect"
linked_port_mode = "proxy"
`

var validate = validator.New(validator.WithRequiredStructEnabled())

// PortRange is an inclusive range of ports, written as [start, end] in TOML.
type PortRange struct {
	Start uint16 `validate:"min=1"`
	End   uint16 `validate:"gtfield=Start"`
}

// UnmarshalTOML decodes a two-element integer array.
func (r *PortRange) UnmarshalTOML(data any) error {
	values, ok := data.([]any)
	if !ok || len(values) != 2 {
		return fmt.Errorf("port range must be an array of two ports, got %v", data)
	}

	var bounds [2]uint16
	for i, v := range values {
		n, ok := v.(int64)
		if !ok {
			return fmt.Errorf("port range bound %v is not an integer", v)
		}
		if n < 0 || n > 65535 {
			return fmt.Errorf("port range bound %d is out of range", n)
		}
		bounds[i] = uint16(n)
	}

	r.Start, r.End = bounds[0], bounds[1]
	return nil
}

func (r PortRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Config is the user configuration loaded from config.toml
type Config struct {
	Ranges         []PortRange `toml:"ranges" validate:"required,min=1,dive"`
	Reserved       []uint16    `toml:"reserved"`
	LinkedPortMode string      `toml:"linked_port_mode" validate:"omitempty,oneof=proxy redirect"`
	Caddyfile      string      `toml:"caddyfile"` // Root Caddyfile override
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Ranges:         []PortRange{{Start: 3000, End: 3999}},
		Reserved:       []uint16{},
		LinkedPortMode: LinkModeProxy,
	}
}

// Parse decodes and validates a TOML config document. Omitted keys take
// their default values.
func Parse(data string) (*Config, error) {
	cfg := Default()
	cfg.Ranges = nil

	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize config: %w", err)
	}
	if !md.IsDefined("ranges") {
		cfg.Ranges = Default().Ranges
	}
	if cfg.LinkedPortMode == "" {
		cfg.LinkedPortMode = LinkModeProxy
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the Config is valid.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	fe := verrs[0]
	switch fe.StructField() {
	case "Ranges":
		return fmt.Errorf("failed to validate config: port ranges must not be empty")
	case "Start":
		return fmt.Errorf("failed to validate config: at port range (%s), start must be a valid port", c.rangeFor(fe.Namespace()))
	case "End":
		return fmt.Errorf("failed to validate config: at port range (%s), start must be less than range end", c.rangeFor(fe.Namespace()))
	case "LinkedPortMode":
		return fmt.Errorf("failed to validate config: linked_port_mode must be %q or %q (got %q)", LinkModeProxy, LinkModeRedirect, c.LinkedPortMode)
	default:
		return fmt.Errorf("failed to validate config: invalid %s", strings.ToLower(fe.Field()))
	}
}

// rangeFor finds the range referenced by a validator namespace like "Config.Ranges[1].End".
func (c *Config) rangeFor(namespace string) PortRange {
	open := strings.Index(namespace, "[")
	end := strings.Index(namespace, "]")
	if open < 0 || end < open {
		return PortRange{}
	}
	idx, err := strconv.Atoi(namespace[open+1 : end])
	if err != nil || idx < 0 || idx >= len(c.Ranges) {
		return PortRange{}
	}
	return c.Ranges[idx]
}

// ValidPorts returns the ports allowed by this configuration in ascending order.
func (c *Config) ValidPorts() []uint16 {
	reserved := make(map[uint16]bool, len(c.Reserved))
	for _, p := range c.Reserved {
		reserved[p] = true
	}

	seen := make(map[uint16]bool)
	var ports []uint16
	for _, r := range c.Ranges {
		for p := int(r.Start); p <= int(r.End); p++ {
			port := uint16(p)
			if reserved[port] || seen[port] {
				continue
			}
			seen[port] = true
			ports = append(ports, port)
		}
	}
	slices.Sort(ports)
	return ports
}

// RedirectLinkedPorts reports whether linked ports redirect instead of proxying.
func (c *Config) RedirectLinkedPorts() bool {
	return c.LinkedPortMode == LinkModeRedirect
}

func (c *Config) String() string {
	ranges := make([]string, len(c.Ranges))
	for i, r := range c.Ranges {
		ranges[i] = r.String()
	}

	var sb strings.Builder
	sb.WriteString("Allowed port ranges: " + strings.Join(ranges, " & "))

	if len(c.Reserved) > 0 {
		reserved := make([]string, len(c.Reserved))
		for i, p := range c.Reserved {
			reserved[i] = strconv.Itoa(int(p))
		}
		sb.WriteString("\nReserved ports: " + strings.Join(reserved, ", "))
	}

	if c.RedirectLinkedPorts() {
		sb.WriteString("\nLinked ports: redirect")
	}
	if c.Caddyfile != "" {
		sb.WriteString("\nCaddyfile: " + c.Caddyfile)
	}

	return sb.String()
}

// Load reads the config at paths.ConfigPath. A missing file yields the
// defaults unless the path was customized through $PORTMAN_CONFIG.
func Load(fsys system.FileSystem, paths *Paths) (*Config, error) {
	data, found, err := system.ReadFileIfExists(fsys, paths.ConfigPath)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to read config at %q", paths.ConfigPath), err)
	}
	if !found {
		if paths.CustomConfig {
			return nil, errors.MissingCustomConfig(paths.ConfigPath)
		}
		return Default(), nil
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return nil, errors.InvalidConfig(fmt.Errorf("config at %q: %w", paths.ConfigPath, err))
	}
	return cfg, nil
}
