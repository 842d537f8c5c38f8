package session

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

func (c *Conn) setState(s State) { c.State = s }

func (m *Manager) handleUsername(c *Conn, line string) {
	if line == "" {
		c.send("Username: ")
		return
	}
	c.pendingUsername = line

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()
	row, err := m.deps.Accounts.Load(ctx, line)
	if err != nil {
		m.deps.Log.Error("load account", zap.Error(err))
		c.send("Internal error, try again.")
		c.send("Username: ")
		return
	}

	if row == nil {
		c.send(fmt.Sprintf("No account named '%s' exists.", line))
		c.send("Create a new account? (y/n): ")
		c.setState(StateAskCreateAccount)
		return
	}

	c.AcctRow = row
	c.send("Password: ")
	c.setState(StateGettingPassword)
}

func (m *Manager) handlePassword(c *Conn, line string) {
	matched, needsUpgrade := m.deps.Accounts.VerifyCredential(c.AcctRow.CredentialHash, line)
	if !matched {
		c.PasswordAttempts++
		if c.PasswordAttempts >= m.deps.Config.Network.MaxPasswordAttempts {
			c.send("Too many failed attempts.")
			m.teardown(c.Sess.ID, "max password attempts")
			return
		}
		c.send("Incorrect password.")
		c.send("Password: ")
		return
	}

	if needsUpgrade {
		ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
		defer cancel()
		if err := m.deps.Accounts.CommissionRehash(ctx, c.AcctRow.ID, line); err != nil {
			m.deps.Log.Error("commission rehash", zap.Error(err))
		}
	}

	m.enterCharacterSelect(c)
}

func (m *Manager) handleAskCreateAccount(c *Conn, line string) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		c.send("Email: ")
		c.setState(StateGettingNewEmail)
	case "n", "no":
		c.send("Username: ")
		c.setState(StateGettingUsername)
	default:
		c.send("Create a new account? (y/n): ")
	}
}

func (m *Manager) handleNewEmail(c *Conn, line string) {
	c.pendingEmail = strings.TrimSpace(line)
	c.send("Choose a password: ")
	c.setState(StateGettingNewPassword)
}

func (m *Manager) handleNewPassword(c *Conn, line string) {
	if len(line) < 4 {
		c.send("Password too short, choose at least 4 characters: ")
		return
	}
	c.pendingPassword = line
	c.send("Confirm password: ")
	c.setState(StateConfirmNewPassword)
}

func (m *Manager) handleConfirmNewPassword(c *Conn, line string) {
	if line != c.pendingPassword {
		c.send("Passwords did not match. Choose a password: ")
		c.setState(StateGettingNewPassword)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()
	row, err := m.deps.Accounts.Create(ctx, c.pendingUsername, c.pendingPassword, c.pendingEmail)
	if err != nil {
		m.deps.Log.Error("create account", zap.Error(err))
		c.send("Could not create account, try again.")
		c.send("Username: ")
		c.setState(StateGettingUsername)
		return
	}

	c.AcctRow = row
	c.send("Account created.")
	m.enterCharacterSelect(c)
}
