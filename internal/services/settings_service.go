package services

import (
	"context"
	"fmt"
	"strings"

	"worklog/internal/core"
	"worklog/internal/ports"
)

type SettingsService struct {
	store ports.ThemeStore
}

func NewSettingsService(store ports.ThemeStore) *SettingsService {
	return &SettingsService{store: store}
}

func (s *SettingsService) Theme(ctx context.Context) (core.ThemeMode, error) {
	m, err := s.store.GetTheme(ctx)
	if err != nil {
		return core.ThemeSystem, fmt.Errorf("get theme: %w", err)
	}
	return m, nil
}

// SetTheme accepts LIGHT, DARK or SYSTEM in any case.
func (s *SettingsService) SetTheme(ctx context.Context, mode string) (core.ThemeMode, error) {
	m := core.ThemeMode(strings.ToUpper(strings.TrimSpace(mode)))
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q", core.ErrInvalidTheme, mode)
	}
	if err := s.store.SetTheme(ctx, m); err != nil {
		return "", fmt.Errorf("set theme: %w", err)
	}
	return m, nil
}
