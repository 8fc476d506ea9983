//go:build linux

package wm

// X11Adapter generalizes window_x11_maximize.go's single-property,
// own-window ChangeProperty call into the full §4.4 contract: reading and
// mutating EWMH properties on an arbitrary target window, not just
// applying a size hint to the capture window.

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// X11Adapter talks to the X server directly via xgb, the same library
// window_x11_maximize.go uses for its own-window size hints.
type X11Adapter struct {
	conn  *xgb.Conn
	root  xproto.Window
	main  WindowID
	atoms map[string]xproto.Atom
}

// NewX11Adapter opens an X11 connection and interns the EWMH atoms the
// adapter needs. mainWindow is the capture window's handle, stored once
// at startup per §3's window-identifier rule.
func NewX11Adapter(mainWindow WindowID) (*X11Adapter, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("xgb connect: %w", err)
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)

	a := &X11Adapter{conn: conn, root: screen.Root, main: mainWindow, atoms: map[string]xproto.Atom{}}
	for _, name := range []string{
		"_NET_ACTIVE_WINDOW", "_NET_CURRENT_DESKTOP", "_NET_WM_DESKTOP",
		"_NET_WM_PID", "_NET_SUPPORTED", "_NET_WM_NAME", "UTF8_STRING",
	} {
		atom, err := a.internAtom(name)
		if err != nil {
			conn.Close()
			return nil, err
		}
		a.atoms[name] = atom
	}
	return a, nil
}

// Close releases the X11 connection.
func (a *X11Adapter) Close() {
	a.conn.Close()
}

func (a *X11Adapter) internAtom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(a.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern atom %s: %w", name, err)
	}
	return reply.Atom, nil
}

func (a *X11Adapter) MainAppWindow() WindowID {
	return a.main
}

func (a *X11Adapter) SupportsFeature(name string) bool {
	reply, err := xproto.GetProperty(a.conn, false, a.root, a.atoms["_NET_SUPPORTED"],
		xproto.AtomAtom, 0, (1<<32)-1).Reply()
	if err != nil || reply.Format != 32 {
		return false
	}
	want, ok := a.atoms[name]
	if !ok {
		return false
	}
	for i := 0; i+4 <= len(reply.Value); i += 4 {
		if xproto.Atom(binary.LittleEndian.Uint32(reply.Value[i:])) == want {
			return true
		}
	}
	return false
}

func (a *X11Adapter) ActiveWindow() (WindowID, error) {
	if !a.SupportsFeature(FeatureActiveWindow) {
		return 0, fmt.Errorf("_NET_ACTIVE_WINDOW unsupported")
	}
	reply, err := xproto.GetProperty(a.conn, false, a.root, a.atoms["_NET_ACTIVE_WINDOW"],
		xproto.AtomWindow, 0, 1).Reply()
	if err != nil || reply.Format != 32 || len(reply.Value) < 4 {
		return 0, fmt.Errorf("read _NET_ACTIVE_WINDOW: %w", err)
	}
	return WindowID(binary.LittleEndian.Uint32(reply.Value)), nil
}

func (a *X11Adapter) WindowName(w WindowID) (string, error) {
	reply, err := xproto.GetProperty(a.conn, false, xproto.Window(w), a.atoms["_NET_WM_NAME"],
		a.atoms["UTF8_STRING"], 0, (1<<32)-1).Reply()
	if err != nil || len(reply.Value) == 0 {
		legacy, lerr := xproto.GetProperty(a.conn, false, xproto.Window(w), xproto.AtomWmName,
			xproto.AtomString, 0, (1<<32)-1).Reply()
		if lerr != nil {
			return "", fmt.Errorf("read window name: %w", lerr)
		}
		return string(legacy.Value), nil
	}
	return string(reply.Value), nil
}

func (a *X11Adapter) WindowClass(w WindowID) (string, error) {
	class, _, err := a.windowClassPair(w)
	return class, err
}

func (a *X11Adapter) WindowClassName(w WindowID) (string, error) {
	_, name, err := a.windowClassPair(w)
	return name, err
}

// windowClassPair reads WM_CLASS, which packs two NUL-terminated strings:
// instance name then class name.
func (a *X11Adapter) windowClassPair(w WindowID) (class, name string, err error) {
	reply, err := xproto.GetProperty(a.conn, false, xproto.Window(w), xproto.AtomWmClass,
		xproto.AtomString, 0, (1<<32)-1).Reply()
	if err != nil {
		return "", "", fmt.Errorf("read WM_CLASS: %w", err)
	}
	parts := splitNul(reply.Value)
	if len(parts) >= 1 {
		name = parts[0]
	}
	if len(parts) >= 2 {
		class = parts[1]
	}
	return class, name, nil
}

func splitNul(b []byte) []string {
	var out []string
	start := 0
	for i, c := range b {
		if c == 0 {
			out = append(out, string(b[start:i]))
			start = i + 1
		}
	}
	if start < len(b) {
		out = append(out, string(b[start:]))
	}
	return out
}

func (a *X11Adapter) WindowPID(w WindowID) (int, error) {
	if !a.SupportsFeature(FeatureWMPID) {
		return 0, fmt.Errorf("_NET_WM_PID unsupported")
	}
	reply, err := xproto.GetProperty(a.conn, false, xproto.Window(w), a.atoms["_NET_WM_PID"],
		xproto.AtomCardinal, 0, 1).Reply()
	if err != nil || len(reply.Value) < 4 {
		return 0, fmt.Errorf("read _NET_WM_PID: %w", err)
	}
	return int(binary.LittleEndian.Uint32(reply.Value)), nil
}

func (a *X11Adapter) WindowChildren(w WindowID) ([]WindowID, error) {
	reply, err := xproto.QueryTree(a.conn, xproto.Window(w)).Reply()
	if err != nil {
		return nil, fmt.Errorf("query tree: %w", err)
	}
	out := make([]WindowID, len(reply.Children))
	for i, c := range reply.Children {
		out[i] = WindowID(c)
	}
	return out, nil
}

func (a *X11Adapter) WindowSiblings(w WindowID) ([]WindowID, error) {
	reply, err := xproto.QueryTree(a.conn, xproto.Window(w)).Reply()
	if err != nil {
		return nil, fmt.Errorf("query tree: %w", err)
	}
	return a.WindowChildren(WindowID(reply.Parent))
}

func (a *X11Adapter) WindowAncestry(w WindowID) ([]WindowID, error) {
	var ancestry []WindowID
	cur := xproto.Window(w)
	for {
		ancestry = append([]WindowID{WindowID(cur)}, ancestry...)
		if cur == a.root {
			break
		}
		reply, err := xproto.QueryTree(a.conn, cur).Reply()
		if err != nil {
			return nil, fmt.Errorf("query tree: %w", err)
		}
		if reply.Parent == 0 {
			break
		}
		cur = reply.Parent
	}
	return ancestry, nil
}

// IsActiveWindow implements §4.4's four-part predicate.
func (a *X11Adapter) IsActiveWindow(w WindowID) bool {
	attrs, err := xproto.GetWindowAttributes(a.conn, xproto.Window(w)).Reply()
	if err != nil || attrs.MapState != xproto.MapStateViewable {
		return false
	}
	geom, err := xproto.GetGeometry(a.conn, xproto.Drawable(w)).Reply()
	if err != nil || geom.Width == 0 || geom.Height == 0 {
		return false
	}
	if a.CurrentDesktop() != a.GetDesktop(w) {
		return false
	}
	active, err := a.ActiveWindow()
	if err != nil || active != w {
		return false
	}
	return a.isTopOfSiblingStack(w)
}

func (a *X11Adapter) isTopOfSiblingStack(w WindowID) bool {
	siblings, err := a.WindowSiblings(w)
	if err != nil || len(siblings) == 0 {
		return false
	}
	return siblings[len(siblings)-1] == w
}

// ActivateWindow implements §4.4's best-effort activation sequence.
func (a *X11Adapter) ActivateWindow(w WindowID) error {
	if a.SupportsFeature(FeatureCurrentDesktop) {
		_ = a.SetCurrentDesktop(a.GetDesktop(w))
	}

	ancestry, err := a.WindowAncestry(w)
	if err != nil {
		return fmt.Errorf("ancestry: %w", err)
	}
	for _, anc := range ancestry {
		win := xproto.Window(anc)
		_ = xproto.ChangeWindowAttributesChecked(a.conn, win, xproto.CwOverrideRedirect,
			[]uint32{1}).Check()
		_ = xproto.ConfigureWindowChecked(a.conn, win, xproto.ConfigWindowStackMode,
			[]uint32{uint32(xproto.StackModeAbove)}).Check()
		a.conn.Sync()
		_ = xproto.ChangeWindowAttributesChecked(a.conn, win, xproto.CwOverrideRedirect,
			[]uint32{0}).Check()
	}

	event := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(w),
		Type:   a.atoms["_NET_ACTIVE_WINDOW"],
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			2, // source indication: pager
			uint32(time.Now().UnixMilli()),
			0, 0, 0,
		}),
	}
	mask := uint32(xproto.EventMaskSubstructureNotify | xproto.EventMaskSubstructureRedirect)
	return xproto.SendEventChecked(a.conn, false, a.root, mask, string(event.Bytes())).Check()
}

func (a *X11Adapter) GetDesktop(w WindowID) int {
	if !a.SupportsFeature(FeatureWMDesktop) {
		return NoDesktop
	}
	reply, err := xproto.GetProperty(a.conn, false, xproto.Window(w), a.atoms["_NET_WM_DESKTOP"],
		xproto.AtomCardinal, 0, 1).Reply()
	if err != nil || len(reply.Value) < 4 {
		return NoDesktop
	}
	return int(binary.LittleEndian.Uint32(reply.Value))
}

func (a *X11Adapter) CurrentDesktop() int {
	if !a.SupportsFeature(FeatureCurrentDesktop) {
		return NoDesktop
	}
	reply, err := xproto.GetProperty(a.conn, false, a.root, a.atoms["_NET_CURRENT_DESKTOP"],
		xproto.AtomCardinal, 0, 1).Reply()
	if err != nil || len(reply.Value) < 4 {
		return NoDesktop
	}
	return int(binary.LittleEndian.Uint32(reply.Value))
}

func (a *X11Adapter) SetCurrentDesktop(i int) error {
	if !a.SupportsFeature(FeatureCurrentDesktop) {
		return nil
	}
	event := xproto.ClientMessageEvent{
		Format: 32,
		Window: a.root,
		Type:   a.atoms["_NET_CURRENT_DESKTOP"],
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(i), 0, 0, 0, 0}),
	}
	mask := uint32(xproto.EventMaskSubstructureNotify | xproto.EventMaskSubstructureRedirect)
	return xproto.SendEventChecked(a.conn, false, a.root, mask, string(event.Bytes())).Check()
}
