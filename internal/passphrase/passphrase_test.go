package passphrase_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fhilgers/goabcrypt/internal/passphrase"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type fakeTerminal struct {
	lines [][]byte
	err   error
}

func (f *fakeTerminal) ReadPassword() ([]byte, error) {
	if len(f.lines) == 0 {
		return nil, f.err
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return bytes.Clone(line), nil
}

func TestPrompt(t *testing.T) {
	out := &bytes.Buffer{}

	buf, err := passphrase.Prompt(&fakeTerminal{lines: [][]byte{[]byte("secret")}}, out, false)
	require.NoError(t, err)
	defer buf.Destroy()

	assert.Equal(t, []byte("secret"), buf.Bytes())
	assert.Equal(t, "Enter passphrase: \n", out.String())
}

func TestPromptConfirm(t *testing.T) {
	out := &bytes.Buffer{}

	buf, err := passphrase.Prompt(&fakeTerminal{lines: [][]byte{[]byte("secret"), []byte("secret")}}, out, true)
	require.NoError(t, err)
	defer buf.Destroy()

	assert.Equal(t, []byte("secret"), buf.Bytes())
	assert.Contains(t, out.String(), "Confirm passphrase: ")
}

func TestPromptMismatch(t *testing.T) {
	_, err := passphrase.Prompt(&fakeTerminal{lines: [][]byte{[]byte("secret"), []byte("secreT")}}, &bytes.Buffer{}, true)
	assert.ErrorIs(t, err, passphrase.ErrMismatch)
}

func TestPromptError(t *testing.T) {
	broken := errors.New("broken terminal")

	_, err := passphrase.Prompt(&fakeTerminal{err: broken}, &bytes.Buffer{}, false)
	assert.ErrorIs(t, err, broken)

	_, err = passphrase.Prompt(&fakeTerminal{lines: [][]byte{[]byte("secret")}, err: broken}, &bytes.Buffer{}, true)
	assert.ErrorIs(t, err, broken)
}

func TestFromReader(t *testing.T) {
	for name, tc := range map[string]struct {
		input string
		want  string
		rest  string
	}{
		"newline":      {"secret\nrest", "secret", "rest"},
		"crlf":         {"secret\r\n", "secret", ""},
		"no newline":   {"secret", "secret", ""},
		"empty line":   {"\nsecret", "", "secret"},
		"inner spaces": {" a b \n", " a b ", ""},
	} {
		t.Run(name, func(t *testing.T) {
			r := strings.NewReader(tc.input)

			buf, err := passphrase.FromReader(r)
			require.NoError(t, err)
			defer buf.Destroy()

			assert.Equal(t, tc.want, string(buf.Bytes()))
			assert.Equal(t, len(tc.rest), r.Len())
		})
	}
}

func TestFromReaderLong(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		line := rapid.StringMatching(`[a-zA-Z0-9 ]{1,2000}`).Draw(t, "line")

		buf, err := passphrase.FromReader(strings.NewReader(line + "\n"))
		require.NoError(t, err)
		defer buf.Destroy()

		assert.Equal(t, line, string(buf.Bytes()))
	})
}

func TestFromEnv(t *testing.T) {
	t.Setenv("ABCRYPT_TEST_PASSPHRASE", "from env")

	buf, err := passphrase.FromEnv("ABCRYPT_TEST_PASSPHRASE")
	require.NoError(t, err)
	defer buf.Destroy()
	assert.Equal(t, "from env", string(buf.Bytes()))

	_, err = passphrase.FromEnv("ABCRYPT_TEST_PASSPHRASE_UNSET")
	assert.Error(t, err)
}

func TestFromFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/secret.txt", []byte("from file\nignored\n"), 0o600))

	buf, err := passphrase.FromFile(fs, "/secret.txt")
	require.NoError(t, err)
	defer buf.Destroy()
	assert.Equal(t, "from file", string(buf.Bytes()))

	_, err = passphrase.FromFile(fs, "/missing.txt")
	assert.Error(t, err)
}
