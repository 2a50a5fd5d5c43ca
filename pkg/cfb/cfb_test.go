package cfb

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempDocfilePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.cfb")
}

func TestCreateDocfileWriteReadRoundTrip(t *testing.T) {
	path := tempDocfilePath(t)

	root, err := CreateDocfile(path, ModeReadWrite)
	require.NoError(t, err, "CreateDocfile")

	stream, err := root.CreateStream("hello", ModeReadWrite)
	require.NoError(t, err, "CreateStream")

	want := []byte("the quick brown fox jumps over the lazy dog")
	n, err := stream.Write(want)
	require.NoError(t, err, "Write")
	assert.Equal(t, len(want), n)

	require.NoError(t, root.Close())

	reopened, err := OpenStorage(path, ModeReadWrite)
	require.NoError(t, err, "OpenStorage")
	defer reopened.Close()

	rs, err := reopened.OpenStream("hello", ModeReadWrite)
	require.NoError(t, err, "OpenStream")

	got, err := io.ReadAll(rs)
	require.NoError(t, err, "ReadAll")
	assert.Equal(t, want, got)
}

func TestCreateDocfileFailIfThere(t *testing.T) {
	path := tempDocfilePath(t)

	_, err := CreateDocfile(path, ModeReadWrite)
	require.NoError(t, err)

	_, err = CreateDocfile(path, ModeFailIfThere)
	assert.ErrorIs(t, err, ErrFileAlreadyExists)
}

func TestStreamSeekAndReadSubrange(t *testing.T) {
	path := tempDocfilePath(t)
	root, err := CreateDocfile(path, ModeReadWrite)
	require.NoError(t, err)
	defer root.Close()

	stream, err := root.CreateStream("s", ModeReadWrite)
	require.NoError(t, err)
	_, err = stream.Write([]byte("0123456789"))
	require.NoError(t, err)

	pos, err := stream.Seek(3, io.SeekStart)
	require.NoError(t, err)
	assert.EqualValues(t, 3, pos)

	buf := make([]byte, 4)
	n, err := stream.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "3456", string(buf))
}

func TestNestedStorageAndEnumElements(t *testing.T) {
	path := tempDocfilePath(t)
	root, err := CreateDocfile(path, ModeReadWrite)
	require.NoError(t, err)
	defer root.Close()

	sub, err := root.CreateStorage("docs", ModeReadWrite)
	require.NoError(t, err)
	_, err = sub.CreateStream("a.txt", ModeReadWrite)
	require.NoError(t, err)
	_, err = sub.CreateStream("b.txt", ModeReadWrite)
	require.NoError(t, err)

	it, err := sub.EnumElements()
	require.NoError(t, err)
	entries := it.Next(10)
	assert.Len(t, entries, 2)
}

func TestSetClassAndStat(t *testing.T) {
	path := tempDocfilePath(t)
	root, err := CreateDocfile(path, ModeReadWrite)
	require.NoError(t, err)
	defer root.Close()

	id := uuid.New()
	require.NoError(t, WriteClassStg(root, id))

	st, err := root.Stat(0)
	require.NoError(t, err)
	assert.Equal(t, StgTypeRoot, st.Type)
	assert.Equal(t, id, st.CLSID)
}

func TestDestroyElement(t *testing.T) {
	path := tempDocfilePath(t)
	root, err := CreateDocfile(path, ModeReadWrite)
	require.NoError(t, err)
	defer root.Close()

	_, err = root.CreateStream("gone", ModeReadWrite)
	require.NoError(t, err)
	require.NoError(t, root.DestroyElement("gone"))

	_, err = root.OpenStream("gone", ModeReadWrite)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestOpenStorageReadOnlyRejectsWrites(t *testing.T) {
	path := tempDocfilePath(t)
	root, err := CreateDocfile(path, ModeReadWrite)
	require.NoError(t, err)
	_, err = root.CreateStream("s", ModeReadWrite)
	require.NoError(t, err)
	require.NoError(t, root.Close())

	ro, err := OpenStorage(path, ModeReadOnly)
	require.NoError(t, err)
	defer ro.Close()

	_, err = ro.CreateStream("other", ModeReadWrite)
	assert.ErrorIs(t, err, ErrInvalidArg)
}

func TestUnimplementedOperationsReturnErrNotImplemented(t *testing.T) {
	path := tempDocfilePath(t)
	root, err := CreateDocfile(path, ModeReadWrite)
	require.NoError(t, err)
	defer root.Close()

	assert.ErrorIs(t, root.Commit(), ErrNotImplemented)
	assert.ErrorIs(t, root.Revert(), ErrNotImplemented)
	assert.ErrorIs(t, root.CopyTo("x", root), ErrNotImplemented)
	assert.ErrorIs(t, root.MoveElementTo("x", root), ErrNotImplemented)
	assert.ErrorIs(t, root.SetStateBits(0), ErrNotImplemented)
	assert.ErrorIs(t, root.SetElementTimes("x", 0, 0), ErrNotImplemented)
}
