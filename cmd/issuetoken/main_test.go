package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"IssueStore/pkg/kit"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestRootCmd_MintsLoaderToken(t *testing.T) {
	t.Setenv("LOADER_SECRET", secret)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--loader", "nightly", "--ttl", "5m"})

	require.NoError(t, cmd.Execute())

	c, err := kit.NewTokenMaker(secret).Parse(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	require.Equal(t, "nightly", c.Loader)
	require.Equal(t, kit.RoleLoader, c.Role)
}

func TestRootCmd_RequiresLoader(t *testing.T) {
	t.Setenv("LOADER_SECRET", secret)

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.Error(t, cmd.Execute())
}

func TestRootCmd_RequiresSecret(t *testing.T) {
	t.Setenv("LOADER_SECRET", "")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--loader", "x"})

	require.Error(t, cmd.Execute())
}
