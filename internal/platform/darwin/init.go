//go:build darwin

package darwin

import "github.com/mlyden/inputsource-cli/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			Switcher: NewSwitcher(),
		}, nil
	}
}
