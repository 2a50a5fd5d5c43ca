package cfb

// Mode is the bit-flag mode passed to CreateDocfile, OpenStorage, and
// CreateStream/CreateStorage. It mirrors the STGM_* flags storage32.c
// keys its create-vs-open and read/write behavior off of, rather than a
// single boolean (spec.md §6.3).
type Mode uint32

const (
	// ModeCreate permits CreateStream/CreateStorage to overwrite an
	// existing element of the same name instead of failing.
	ModeCreate Mode = 1 << iota
	// ModeFailIfThere makes CreateStream/CreateStorage fail with
	// ErrFileAlreadyExists instead of overwriting.
	ModeFailIfThere
	// ModeReadWrite opens or creates a storage for mutation.
	ModeReadWrite
	// ModeReadOnly opens a storage strictly for reading; every mutating
	// call against it (and any stream/storage opened beneath it) fails
	// with ErrInvalidArg.
	ModeReadOnly
)

// CreateMode is the Mode subset meaningful to CreateDocfile.
type CreateMode = Mode

// OpenMode is the Mode subset meaningful to OpenStorage.
type OpenMode = Mode

// StatFlag modifies what (*Storage).Stat/(*Stream).Stat populate.
type StatFlag uint32

const (
	// StatflagNoname omits the Name field from the returned Statstg,
	// matching STATFLAG_NONAME.
	StatflagNoname StatFlag = 1 << iota
)
