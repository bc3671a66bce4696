package auth

import (
	fsrepo "WikiGo/internal/cli/repo/fs"
)

// LoadToken reads the saved auth token, if any.
func LoadToken() (string, error) {
	return fsrepo.AuthFSStore{}.Load()
}

// SaveToken persists the auth token for subsequent commands.
func SaveToken(token string) error {
	return fsrepo.AuthFSStore{}.Save(token)
}
