// Package shell provides the shell integration scripts printed by
// `portman init`. The scripts export PORT, PORTMAN_PROJECT, and
// PORTMAN_LINKED_PORT for the project active in the current directory.
package shell

import (
	"fmt"
	"sort"
)

// Type identifies a supported shell.
type Type string

const (
	TypeFish Type = "fish"
	TypeZsh  Type = "zsh"
)

// Shell is implemented by every supported shell.
type Shell interface {
	// Type returns the shell identifier.
	Type() Type

	// InitScript returns the script that installs the activation hooks.
	InitScript() string
}

var shells = map[Type]Shell{
	TypeFish: fish{},
	TypeZsh:  zsh{},
}

// New returns the Shell for the given name.
func New(name string) (Shell, error) {
	if s, ok := shells[Type(name)]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("unsupported shell %q (supported: %v)", name, Supported())
}

// Supported returns the names of the supported shells.
func Supported() []string {
	names := make([]string, 0, len(shells))
	for t := range shells {
		names = append(names, string(t))
	}
	sort.Strings(names)
	return names
}

type fish struct{}

func (fish) Type() Type { return TypeFish }

func (fish) InitScript() string {
	return `function __portman_activate
    if set lines (portman get --extended 2> /dev/null)
        set -gx PORT $lines[1]
        set -gx PORTMAN_PROJECT $lines[2]
        if test -n "$lines[4]"
            set -gx PORTMAN_LINKED_PORT $lines[4]
        else
            set -e PORTMAN_LINKED_PORT
        end
    else
        set -e PORT PORTMAN_PROJECT PORTMAN_LINKED_PORT
    end
end

function __portman_prompt_hook --on-event fish_prompt
    __portman_activate
    function __portman_cd_hook --on-variable PWD
        __portman_activate
    end
end

function __portman_preexec_hook --on-event fish_preexec
    # The prompt hook resyncs before the next prompt
    functions -e __portman_cd_hook
end
`
}

type zsh struct{}

func (zsh) Type() Type { return TypeZsh }

func (zsh) InitScript() string {
	return `__portman_activate() {
  local -a lines
  if lines=("${(@f)$(portman get --extended 2> /dev/null)}"); then
    export PORT="${lines[1]}"
    export PORTMAN_PROJECT="${lines[2]}"
    if [[ -n "${lines[4]}" ]]; then
      export PORTMAN_LINKED_PORT="${lines[4]}"
    else
      unset PORTMAN_LINKED_PORT
    fi
  else
    unset PORT PORTMAN_PROJECT PORTMAN_LINKED_PORT
  fi
}

autoload -Uz add-zsh-hook
add-zsh-hook chpwd __portman_activate
__portman_activate
`
}
