package store

// Unavailable is the degraded Store handed out when no session context
// exists (no cookie, backend down). Reads come back empty, writes and
// dispatches report false, and nothing ever panics or errors.
type Unavailable struct{}

func NewUnavailable() Unavailable { return Unavailable{} }

func (Unavailable) Get(string) ([]byte, bool)  { return nil, false }
func (Unavailable) Set(string, []byte) bool    { return false }
func (Unavailable) Remove(string) bool         { return false }
func (Unavailable) Dispatch(string) bool       { return false }
