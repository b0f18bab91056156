package app

import (
	"fmt"

	"github.com/mesh-intelligence/luxedir/pkg/types"
)

// Config returns the system settings.
func (d *Directory) Config() types.SystemConfig {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state.Config
}

// UpdateConfig validates and replaces the system settings.
func (d *Directory) UpdateConfig(cfg types.SystemConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("updating settings: %w", err)
	}
	cfg.SettingID = types.GlobalSettingID

	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Config = cfg
	d.save(types.PartConfig)
	return nil
}

// RequestResetConfig describes the confirmation a settings reset needs.
func (d *Directory) RequestResetConfig() Decision {
	return Decision{
		RequiresConfirmation: true,
		Danger:               DangerWarning,
		Title:                "Reset settings",
		Message:              "Are you sure? This will reset your theme, logo, and access settings to the system defaults.",
		ConfirmText:          "Reset",
	}
}

// ResetConfig restores the default system settings.
func (d *Directory) ResetConfig() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Config = types.DefaultSystemConfig()
	d.save(types.PartConfig)
	d.log.Infow("settings reset")
}
