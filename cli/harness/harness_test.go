package harness

import (
	"reflect"
	"testing"
)

func TestBuildFlags(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "empty options",
			opts: Options{},
			want: nil,
		},
		{
			name: "jobs only",
			opts: Options{Jobs: 4},
			want: []string{"-j", "4"},
		},
		{
			name: "junit only",
			opts: Options{JUnit: true},
			want: []string{"--timer", "--formatter", "TAP::Formatter::JUnit"},
		},
		{
			name: "adapter only",
			opts: Options{Adapter: AdapterLSF},
			want: []string{"--exec", "lsf-run"},
		},
		{
			name: "all flags in fixed order",
			opts: Options{Jobs: 10, JUnit: true, Adapter: AdapterTracker},
			want: []string{"-j", "10", "--timer", "--formatter", "TAP::Formatter::JUnit", "--exec", "track-run"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildFlags(tt.opts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildFlags() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		tests    []string
		userArgs []string
		want     []string
	}{
		{
			name: "flags then tests then user args",
			opts: Options{Jobs: 2},
			tests: []string{
				"t/fast.t",
				"t/slow.t",
			},
			userArgs: []string{"--verbose", "t/extra.t"},
			want:     []string{"-j", "2", "t/fast.t", "t/slow.t", "--verbose", "t/extra.t"},
		},
		{
			name:     "no resolved tests",
			opts:     Options{},
			userArgs: []string{"t/one.t"},
			want:     []string{"t/one.t"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildArgs(tt.opts, tt.tests, tt.userArgs)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHookCommand(t *testing.T) {
	tests := []struct {
		name string
		self string
		args []string
		want string
	}{
		{
			name: "no extra args",
			self: "/usr/local/bin/runtests",
			args: nil,
			want: "/usr/local/bin/runtests --git HEAD^..HEAD",
		},
		{
			name: "trailing args carried through",
			self: "/usr/local/bin/runtests",
			args: []string{"-j", "4", "t/api.t"},
			want: "/usr/local/bin/runtests --git HEAD^..HEAD -j 4 t/api.t",
		},
		{
			name: "args with shell metacharacters are quoted",
			self: "/opt/run tests/runtests",
			args: []string{"t/name with space.t"},
			want: "'/opt/run tests/runtests' --git HEAD^..HEAD 't/name with space.t'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HookCommand(tt.self, tt.args)
			if got != tt.want {
				t.Errorf("HookCommand() = %q, want %q", got, tt.want)
			}
		})
	}
}
