package config

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrProfileNotFound = errors.New("profile does not exist")
	ErrProfileExists   = errors.New("profile already exists")
)

// ProfileNames returns the profile names in sorted order.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Config) Profile(name string) (Profile, error) {
	profile, exists := c.Profiles[name]
	if !exists {
		return Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	return profile, nil
}

func (c *Config) AddProfile(name string, profile Profile) error {
	if name == "" {
		return errors.New("profile name cannot be empty")
	}
	if _, exists := c.Profiles[name]; exists {
		return fmt.Errorf("%w: %s", ErrProfileExists, name)
	}
	if c.Profiles == nil {
		c.Profiles = make(map[string]Profile)
	}
	if profile.Provider == "" {
		profile.Provider = ProviderGemini
	}
	c.Profiles[name] = profile
	return nil
}

func (c *Config) UpdateProfile(name string, profile Profile) error {
	if _, exists := c.Profiles[name]; !exists {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	c.Profiles[name] = profile
	if name == c.ActiveProfile {
		return c.UseProfile(name)
	}
	return nil
}

// DeleteProfile removes name. Deleting the active profile activates another
// one, or a fresh default profile when none is left.
func (c *Config) DeleteProfile(name string) error {
	if _, exists := c.Profiles[name]; !exists {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	delete(c.Profiles, name)

	if c.ActiveProfile != name {
		return nil
	}
	if len(c.Profiles) == 0 {
		c.Profiles["default"] = defaultProfile()
	}
	return c.UseProfile(c.ProfileNames()[0])
}
