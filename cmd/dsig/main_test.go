package main

import (
	"bytes"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/effective-security/x/guid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runResult struct {
	rc     int
	out    string
	errout string
}

func run(args ...string) runResult {
	out := bytes.NewBuffer([]byte{})
	errout := bytes.NewBuffer([]byte{})
	rc := 0
	exit := func(c int) {
		rc = c
	}

	realMain(append([]string{"dsig"}, args...), out, errout, exit)
	return runResult{rc: rc, out: out.String(), errout: errout.String()}
}

func TestMain(t *testing.T) {
	res := run("unknown")
	assert.Equal(t, 1, res.rc)
	assert.Contains(t, res.errout, "dsig: error: unexpected argument unknown")
	assert.Empty(t, res.out)

	res = run("version")
	assert.Equal(t, 0, res.rc)
	assert.True(t, strings.HasPrefix(res.out, "dsig "))
	assert.Empty(t, res.errout)

	res = run("keygen", "-n", "Alice")
	assert.Equal(t, 1, res.rc)
	assert.Contains(t, res.errout, "dsig: error: missing flags:")
}

func TestKeygenSignVerify(t *testing.T) {
	dir := path.Join(os.TempDir(), "dsig-main", guid.MustCreate())
	require.NoError(t, os.MkdirAll(dir, 0700))
	defer os.RemoveAll(dir)

	file := func(name string) string {
		return path.Join(dir, name)
	}

	res := run("keygen", "-n", "Alice", "-m", "alice@example.com", "-w", "s3cret",
		"-k", file("alice.key"), "-p", file("alice.pub"))
	require.Equal(t, 0, res.rc, res.errout)

	res = run("fingerprint", "-p", file("alice.pub"), "-f", file("alice.fp"))
	require.Equal(t, 0, res.rc, res.errout)

	res = run("fingerprint", "-p", file("alice.pub"))
	require.Equal(t, 0, res.rc, res.errout)
	fp, err := os.ReadFile(file("alice.fp"))
	require.NoError(t, err)
	assert.Equal(t, string(fp), res.out)

	res = run("sign", "-w", "s3cret", "-k", file("alice.key"), "-s", file("payload.sig"),
		"-p", "data:hello world", "-i", "data:purpose: test")
	require.Equal(t, 0, res.rc, res.errout)

	res = run("verify", "-p", "data:hello world", "-s", file("payload.sig"),
		"-k", file("alice.pub"), "-f", file("alice.fp"), "-i", "stdout:")
	require.Equal(t, 0, res.rc, res.errout)
	assert.Equal(t, "purpose: test", res.out)

	res = run("verify", "-p", "data:hello xorld", "-s", file("payload.sig"),
		"-k", file("alice.pub"), "-f", file("alice.fp"))
	assert.Equal(t, 1, res.rc)
	assert.Equal(t, "dsig: error: DSIG-Payload-Digest does not match\n", res.errout)

	t.Setenv("DSIG_PASS_PHRASE", "wrong")
	res = run("sign", "-k", file("alice.key"), "-s", "stdout:", "-p", "data:hello world")
	assert.Equal(t, 1, res.rc)
	assert.Contains(t, res.errout, "dsig: error: invalid private key (decryption failed)")
	assert.Empty(t, res.out)
}
