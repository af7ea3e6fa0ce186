package logger

import "sync"

// named maps a component name to the logger installed for it. Components look
// their logger up by name at the moment they need it, so a logger registered
// after startup takes effect without rewiring.
var named sync.Map // string -> *Logger

// Register installs l for the component name and returns the logger it
// replaced, or nil.
func Register(name string, l *Logger) *Logger {
	prev, loaded := named.Swap(name, l)
	if !loaded {
		return nil
	}
	return prev.(*Logger)
}

// Unregister removes the logger installed for name, so Get falls back to
// the global logger again.
func Unregister(name string) {
	named.Delete(name)
}

// Get returns the logger installed for name, or the global logger tagged
// with the component name.
func Get(name string) *Logger {
	if l, ok := named.Load(name); ok {
		return l.(*Logger)
	}
	return GetGlobalLogger().WithComponent(name)
}
