package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// AppName は設定ディレクトリ名です。
	AppName = "todoctl"

	// SessionFile はログイン情報を保存するファイル名です。
	SessionFile = "session.json"
)

// ErrNotLoggedIn はセッションファイルが無いことを表します。
var ErrNotLoggedIn = errors.New("not logged in (run `todoctl login` first)")

// Session は保存されたログイン情報です。
type Session struct {
	Server string `json:"server"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// DefaultConfigDir は XDG_CONFIG_HOME/todoctl、なければ $HOME/.config/todoctl を返します。
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func sessionPath(dir string) string {
	return filepath.Join(dir, SessionFile)
}

// LoadSession はセッションを読み込みます。
func LoadSession(dir string) (*Session, error) {
	data, err := os.ReadFile(sessionPath(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}
	if s.Token == "" {
		return nil, ErrNotLoggedIn
	}
	return &s, nil
}

// SaveSession はセッションを 0600 で保存します。ディレクトリは 0700 で作成します。
func SaveSession(dir string, s *Session) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(sessionPath(dir), data, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// RemoveSession はセッションを削除します。無くてもエラーにしません。
func RemoveSession(dir string) error {
	if err := os.Remove(sessionPath(dir)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}
