package app

// Key binding constants used in handleKey.
const (
	KeyQuit      = "q"
	KeyQuitUpper = "Q"
	KeyCtrlC     = "ctrl+c"
	KeyTab       = "tab"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyJ         = "j"
	KeyK         = "k"
	KeyEnter     = "enter"
	KeyEscape    = "esc"
	KeyBackspace = "backspace"

	KeyAddFile      = "a"
	KeyAddDrive     = "d"
	KeyProcess      = "p"
	KeyBatch        = "b"
	KeyRemove       = "x"
	KeyImprove      = "m"
	KeyExport       = "e"
	KeyArchive      = "z"
	KeyInstructions = "i"
	KeyAnnotations  = "v"
	KeyRefresh      = "r"
	KeySortToggle   = "o"
	KeySearch       = "/"
)
