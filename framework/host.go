package framework

// Host is the environment that owns a Registry.
type Host interface {
	// Exit terminates the current session. What that means is up to the host.
	Exit()
}

// HostFunc adapts a function to Host.
type HostFunc func()

func (f HostFunc) Exit() { f() }

type nullHost struct{}

func (n nullHost) Exit() {}

// NullHost returns a Host whose Exit does nothing.
func NullHost() Host { return nullHost{} }
