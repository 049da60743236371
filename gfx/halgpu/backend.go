package halgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/glyphlab"
	"github.com/gogpu/glyphlab/gfx"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Backend is a gfx.GraphicsBackend on a HAL device.
//
// Backend is not safe for concurrent use.
type Backend struct {
	name    string
	variant gputypes.Backend
	api     hal.Backend
	cfg     config

	instance hal.Instance
	adapter  hal.Adapter
	info     gputypes.AdapterInfo
	device   hal.Device
	queue    hal.Queue
	external bool

	surface   hal.Surface
	offscreen *offscreen
	format    gputypes.TextureFormat
	width     int
	height    int

	pipe     *pipeline
	blank    *Texture
	textures map[*Texture]struct{}
	dead     []*Texture

	vertexBuf  hal.Buffer
	vertexCap  uint64
	uniformBuf hal.Buffer
	vertexData []byte

	frame      *frame
	inflight   []hal.CommandBuffer
	lastSubmit uint64
	closed     bool
}

var _ gfx.GraphicsBackend = (*Backend)(nil)

// New returns a backend for a registered HAL variant. The HAL is looked up
// in Init, so creating a backend for an unavailable API does not fail.
func New(name string, variant gputypes.Backend, opts ...Option) *Backend {
	b := &Backend{name: name, variant: variant, cfg: defaultConfig()}
	for _, opt := range opts {
		opt(&b.cfg)
	}
	return b
}

// NewWithAPI returns a backend that uses api directly instead of the HAL
// registry.
func NewWithAPI(name string, api hal.Backend, opts ...Option) *Backend {
	b := New(name, api.Variant(), opts...)
	b.api = api
	return b
}

// Name implements gfx.GraphicsBackend.
func (b *Backend) Name() string { return b.name }

// Device returns the HAL device, or nil before Init.
func (b *Backend) Device() hal.Device { return b.device }

// Queue returns the HAL queue, or nil before Init.
func (b *Backend) Queue() hal.Queue { return b.queue }

// Init implements gfx.GraphicsBackend. It creates the instance, picks an
// adapter and opens the device. A device adopted with SetDeviceProvider is
// kept as is.
func (b *Backend) Init() error {
	if b.closed {
		return gfx.ErrClosed
	}
	if b.device != nil {
		return b.createPipeline()
	}

	api := b.api
	if api == nil {
		var ok bool
		api, ok = hal.GetBackend(b.variant)
		if !ok {
			return gfx.Step(b.name, "get backend", fmt.Errorf("%w: %s", hal.ErrBackendNotFound, b.variant))
		}
		b.api = api
	}

	desc := &hal.InstanceDescriptor{Backends: gputypes.Backends(1) << b.variant}
	if b.cfg.debug {
		desc.Flags = gputypes.InstanceFlagsDebug
	}
	instance, err := api.CreateInstance(desc)
	if err != nil {
		return gfx.Step(b.name, "create instance", err)
	}
	b.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	selected, err := selectAdapter(adapters, b.cfg.adapterIndex)
	if err != nil {
		return gfx.Step(b.name, "enumerate adapters", err)
	}
	for i := range adapters {
		if &adapters[i] != selected {
			adapters[i].Adapter.Destroy()
		}
	}

	open, err := selected.Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		return gfx.Step(b.name, "open device", err)
	}
	b.adapter = selected.Adapter
	b.info = selected.Info
	b.device = open.Device
	b.queue = open.Queue

	glyphlab.Logger().Info("halgpu: device opened",
		"backend", b.name, "adapter", b.info.Name, "vendor", b.info.Vendor, "driver", b.info.Driver)

	return b.createPipeline()
}

// selectAdapter prefers a discrete GPU, then an integrated one, then the
// first adapter. A non-negative index overrides the preference.
func selectAdapter(adapters []hal.ExposedAdapter, index int) (*hal.ExposedAdapter, error) {
	if len(adapters) == 0 {
		return nil, gfx.ErrNoAdapter
	}
	if index >= 0 {
		if index >= len(adapters) {
			return nil, fmt.Errorf("%w: index %d of %d", gfx.ErrNoAdapter, index, len(adapters))
		}
		return &adapters[index], nil
	}
	for _, want := range []gputypes.DeviceType{gputypes.DeviceTypeDiscreteGPU, gputypes.DeviceTypeIntegratedGPU} {
		for i := range adapters {
			if adapters[i].Info.DeviceType == want {
				return &adapters[i], nil
			}
		}
	}
	return &adapters[0], nil
}

// Adapters lists the adapters the HAL exposes without opening any device.
func (b *Backend) Adapters() ([]gpucontext.AdapterInfo, error) {
	api := b.api
	if api == nil {
		var ok bool
		if api, ok = hal.GetBackend(b.variant); !ok {
			return nil, gfx.Step(b.name, "get backend", hal.ErrBackendNotFound)
		}
	}
	instance, err := api.CreateInstance(&hal.InstanceDescriptor{Backends: gputypes.Backends(1) << b.variant})
	if err != nil {
		return nil, gfx.Step(b.name, "create instance", err)
	}
	defer instance.Destroy()

	adapters := instance.EnumerateAdapters(nil)
	infos := make([]gpucontext.AdapterInfo, len(adapters))
	for i := range adapters {
		infos[i] = adapterInfo(adapters[i].Info)
		adapters[i].Adapter.Destroy()
	}
	return infos, nil
}

// Adapter implements gfx.GraphicsBackend.
func (b *Backend) Adapter() gpucontext.AdapterInfo {
	return adapterInfo(b.info)
}

func adapterInfo(info gputypes.AdapterInfo) gpucontext.AdapterInfo {
	t := gpucontext.AdapterTypeUnknown
	switch info.DeviceType {
	case gputypes.DeviceTypeDiscreteGPU:
		t = gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		t = gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		t = gpucontext.AdapterTypeSoftware
	}
	return gpucontext.AdapterInfo{Name: info.Name, Type: t}
}

// SetDeviceProvider makes the backend draw with a device owned by someone
// else. The provider must expose HalDevice() and HalQueue() returning
// hal.Device and hal.Queue. The adopted objects are not destroyed by Close.
// It must be called before Init.
//
// Window surfaces are created from the instance the device came from. A
// provider that also exposes HalInstance() returning hal.Instance can
// drive window targets; without it the backend is headless-only and
// CreateSurface rejects windows with gfx.ErrUnsupportedTarget.
func (b *Backend) SetDeviceProvider(provider gpucontext.DeviceProvider) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return errors.New("halgpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return errors.New("halgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return errors.New("halgpu: provider HalQueue is not hal.Queue")
	}
	if b.device != nil {
		return errors.New("halgpu: device already initialized")
	}
	var instance hal.Instance
	if ip, ok := provider.(interface{ HalInstance() any }); ok {
		instance, _ = ip.HalInstance().(hal.Instance)
	}

	b.device = device
	b.queue = queue
	b.instance = instance
	b.external = true
	b.info = gputypes.AdapterInfo{Name: provider.AdapterInfo().Name}
	switch provider.AdapterInfo().Type {
	case gpucontext.AdapterTypeDiscrete:
		b.info.DeviceType = gputypes.DeviceTypeDiscreteGPU
	case gpucontext.AdapterTypeIntegrated:
		b.info.DeviceType = gputypes.DeviceTypeIntegratedGPU
	case gpucontext.AdapterTypeSoftware:
		b.info.DeviceType = gputypes.DeviceTypeCPU
	}
	if f := provider.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		b.cfg.format = f
	}
	glyphlab.Logger().Info("halgpu: using shared device", "backend", b.name, "adapter", b.info.Name)
	return nil
}

// Close implements gfx.GraphicsBackend. It waits for the device to go idle
// and releases buffers, textures, the pipeline, the surface, the device and
// the instance, in that order.
func (b *Backend) Close() {
	if b.closed {
		return
	}
	b.closed = true
	log := glyphlab.Logger()

	if b.device != nil {
		if err := b.device.WaitIdle(); err != nil {
			log.Warn("halgpu: wait idle failed", "backend", b.name, "err", err)
		}
	}
	b.discardFrame()

	if b.device != nil {
		for _, cb := range b.inflight {
			b.device.FreeCommandBuffer(cb)
		}
		b.inflight = nil
		if b.vertexBuf != nil {
			b.device.DestroyBuffer(b.vertexBuf)
			b.vertexBuf = nil
		}
		if b.uniformBuf != nil {
			b.device.DestroyBuffer(b.uniformBuf)
			b.uniformBuf = nil
		}
		for t := range b.textures {
			t.Destroy()
		}
		for _, t := range b.dead {
			t.release()
		}
		b.dead = nil
		if b.blank != nil {
			b.blank.Destroy()
			b.blank = nil
		}
		if b.pipe != nil {
			b.pipe.destroy(b.device)
			b.pipe = nil
		}
	}

	b.destroySurface()

	if b.device != nil && !b.external {
		b.device.Destroy()
	}
	b.device = nil
	b.queue = nil
	if b.adapter != nil {
		b.adapter.Destroy()
		b.adapter = nil
	}
	if b.instance != nil && !b.external {
		b.instance.Destroy()
	}
	b.instance = nil
	log.Info("halgpu: closed", "backend", b.name)
}
