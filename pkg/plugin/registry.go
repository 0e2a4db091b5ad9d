package plugin

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/justyntemme/triadgo/pkg/framework/bus"
	"github.com/justyntemme/triadgo/pkg/framework/debug"
	"github.com/justyntemme/triadgo/pkg/framework/plugin"
	"github.com/justyntemme/triadgo/pkg/framework/process"
	"github.com/justyntemme/triadgo/pkg/midi"
)

var (
	// ErrNoPlugin is returned when instantiating before Register.
	ErrNoPlugin = errors.New("plugin: no plugin registered")
	// ErrUnknownClass is returned when a class UID does not match the registered plugin.
	ErrUnknownClass = errors.New("plugin: unknown class id")
	// ErrNilHost is returned when instantiating without a host handle.
	ErrNilHost = errors.New("plugin: nil host")
	// ErrNoState is returned when the processor keeps no session state.
	ErrNoState = errors.New("plugin: processor has no state")
)

// FactoryInfo describes the vendor shipping the plugin.
type FactoryInfo struct {
	Vendor string
	URL    string
	Email  string
}

var (
	registryMu  sync.RWMutex
	registered  Plugin
	factoryInfo = FactoryInfo{
		Vendor: "Hans Baier",
		URL:    "https://github.com/hansfbaier",
	}
	config = DefaultConfig()

	// Live instances indexed by handle
	instances   = make(map[uintptr]*Instance)
	instancesMu sync.RWMutex
	nextID      uintptr = 1
)

// Register sets the global plugin
func Register(p Plugin) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registered = p
}

// Registered returns the global plugin, or nil.
func Registered() Plugin {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registered
}

// SetFactoryInfo sets the factory information
func SetFactoryInfo(info FactoryInfo) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factoryInfo = info
}

// GetFactoryInfo returns the factory information
func GetFactoryInfo() FactoryInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return factoryInfo
}

// SetConfig sets the configuration used for instances created from now on.
func SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	config = cfg
	return nil
}

// GetConfig returns the current configuration
func GetConfig() Config {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return config
}

// Instance is one live plugin instance: the processor bound to its host.
// Calls are forwarded to the processor; a panic inside the processor is
// contained here and never reaches the host.
type Instance struct {
	id        uintptr
	info      plugin.Info
	host      Host
	processor Processor
	panics    uint64
}

// Instantiate creates an instance of the registered plugin bound to host.
func Instantiate(host Host) (*Instance, error) {
	if host == nil {
		return nil, ErrNilHost
	}

	registryMu.RLock()
	p, cfg := registered, config
	registryMu.RUnlock()

	if p == nil {
		return nil, ErrNoPlugin
	}

	processor := p.CreateProcessor(host, cfg)
	if processor == nil {
		return nil, fmt.Errorf("plugin: %s returned no processor", p.GetInfo().Name)
	}

	inst := &Instance{
		info:      p.GetInfo(),
		host:      host,
		processor: processor,
	}
	registerInstance(inst)

	debug.Debug("instantiated %s as #%d", inst.info.Name, inst.id)
	return inst, nil
}

// CreateInstance instantiates the registered plugin if uid names its class.
func CreateInstance(uid [16]byte, host Host) (*Instance, error) {
	p := Registered()
	if p == nil {
		return nil, ErrNoPlugin
	}
	if p.GetInfo().UID() != uid {
		return nil, ErrUnknownClass
	}
	return Instantiate(host)
}

// registerInstance assigns the instance a handle
func registerInstance(inst *Instance) {
	instancesMu.Lock()
	defer instancesMu.Unlock()
	inst.id = nextID
	nextID++
	instances[inst.id] = inst
}

// Lookup returns the live instance with the given handle, or nil.
func Lookup(id uintptr) *Instance {
	instancesMu.RLock()
	defer instancesMu.RUnlock()

	if id == 0 {
		return nil
	}
	return instances[id]
}

// InstanceCount returns the number of live instances.
func InstanceCount() int {
	instancesMu.RLock()
	defer instancesMu.RUnlock()
	return len(instances)
}

// ID returns the instance handle.
func (i *Instance) ID() uintptr {
	return i.id
}

// Info returns the static metadata of the instance's plugin.
func (i *Instance) Info() plugin.Info {
	return i.info
}

// Processor returns the wrapped processor.
func (i *Instance) Processor() Processor {
	return i.processor
}

// Panics returns how many processor panics were contained.
func (i *Instance) Panics() uint64 {
	return i.panics
}

// recoverPanic keeps a processor bug from unwinding into the host
func (i *Instance) recoverPanic(operation string) {
	if r := recover(); r != nil {
		i.panics++
		debug.Error("%s #%d: recovered panic in %s: %v", i.info.Name, i.id, operation, r)
	}
}

// Initialize forwards the processing setup.
func (i *Instance) Initialize(sampleRate float64, maxBlockSize int32) (err error) {
	defer func() {
		if r := recover(); r != nil {
			i.panics++
			err = fmt.Errorf("plugin: initialize panicked: %v", r)
		}
	}()
	return i.processor.Initialize(sampleRate, maxBlockSize)
}

// ProcessEvents forwards the block's events.
func (i *Instance) ProcessEvents(events []midi.Event) {
	defer i.recoverPanic("ProcessEvents")
	i.processor.ProcessEvents(events)
}

// ProcessAudio forwards the block's audio. If the processor panics, the
// output still receives the input unchanged.
func (i *Instance) ProcessAudio(ctx *process.Context) {
	defer func() {
		if r := recover(); r != nil {
			i.panics++
			if ctx != nil {
				ctx.PassThrough()
			}
			debug.Error("%s #%d: recovered panic in ProcessAudio: %v", i.info.Name, i.id, r)
		}
	}()
	i.processor.ProcessAudio(ctx)
}

// CanDo forwards a capability query.
func (i *Instance) CanDo(c plugin.CanDo) (s plugin.Supported) {
	defer func() {
		if recover() != nil {
			s = plugin.No
		}
	}()
	return i.processor.CanDo(c)
}

// GetBuses returns the processor's bus configuration.
func (i *Instance) GetBuses() *bus.Configuration {
	return i.processor.GetBuses()
}

// SetActive forwards activation changes.
func (i *Instance) SetActive(active bool) error {
	defer i.recoverPanic("SetActive")
	return i.processor.SetActive(active)
}

// SaveState writes the processor's session state.
func (i *Instance) SaveState(w io.Writer) (err error) {
	p, ok := i.processor.(Persistent)
	if !ok {
		return ErrNoState
	}
	defer func() {
		if r := recover(); r != nil {
			i.panics++
			err = fmt.Errorf("plugin: save state panicked: %v", r)
		}
	}()
	return p.SaveState(w)
}

// LoadState restores the processor's session state.
func (i *Instance) LoadState(r io.Reader) (err error) {
	p, ok := i.processor.(Persistent)
	if !ok {
		return ErrNoState
	}
	defer func() {
		if rec := recover(); rec != nil {
			i.panics++
			err = fmt.Errorf("plugin: load state panicked: %v", rec)
		}
	}()
	return p.LoadState(r)
}

// Release deactivates the instance and drops its handle.
func (i *Instance) Release() {
	if err := i.SetActive(false); err != nil {
		debug.Warn("%s #%d: deactivate on release: %v", i.info.Name, i.id, err)
	}

	instancesMu.Lock()
	defer instancesMu.Unlock()
	delete(instances, i.id)
}
