package apppaths

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryFor(t *testing.T) {
	entry, ok := entryFor("WINWORD.EXE", `"C:\Program Files\Microsoft Office\root\Office16\WINWORD.EXE"`)

	assert.True(t, ok)
	assert.Equal(t, "winword", entry.Name)
	assert.Equal(t, `C:\Program Files\Microsoft Office\root\Office16\WINWORD.EXE`, entry.Executable)
	assert.Equal(t, []string{"winword"}, entry.ProcessNames)
}

func TestEntryFor_Rejects(t *testing.T) {
	_, ok := entryFor("empty.exe", "  ")
	assert.False(t, ok)

	_, ok = entryFor(".exe", `C:\x.exe`)
	assert.False(t, ok)
}

func TestDiscover_DoesNotFail(t *testing.T) {
	_, err := Discover()
	assert.NoError(t, err)
}
