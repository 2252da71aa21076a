//go:build !nogpu

package gpu

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/rs"
	"github.com/gogpu/rs/backend/software"
	"github.com/gogpu/rs/internal/cache"
	"github.com/gogpu/wgpu"

	// Register the platform HAL backends via init().
	_ "github.com/gogpu/wgpu/hal/allbackends"
)

// Accelerator errors.
var (
	ErrNoDevice        = errors.New("gpu: no device")
	ErrSoftwareAdapter = errors.New("gpu: adapter is a software renderer")
	ErrProvider        = errors.New("gpu: provider does not expose a wgpu device")
)

const (
	workgroupSize = 8
	mapTimeout    = 5 * time.Second
	dimsSize      = 16
)

// Accelerator runs color matrix and 3x3 convolution launches on u8x4
// allocations as wgpu compute shaders. It implements software.Accelerator.
//
// The accelerator either creates its own device in Init or uses a device
// shared through SetDeviceProvider.
type Accelerator struct {
	mu sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	pipelines *cache.Cache[rs.IntrinsicKind, *pipeline]

	ready    bool
	external bool // shared device, not destroyed on Close
}

var _ software.Accelerator = (*Accelerator)(nil)

// NewAccelerator returns an accelerator with no device.
func NewAccelerator() *Accelerator {
	a := &Accelerator{pipelines: cache.New[rs.IntrinsicKind, *pipeline](len(kernels))}
	a.pipelines.OnEvict(func(_ rs.IntrinsicKind, p *pipeline) { p.release() })
	return a
}

// Name implements software.Accelerator.
func (a *Accelerator) Name() string { return "wgpu" }

// CanAccelerate implements software.Accelerator.
func (a *Accelerator) CanAccelerate(kind rs.IntrinsicKind) bool {
	_, ok := kernels[kind]
	return ok
}

// Init implements software.Accelerator. It requests an adapter and a device
// unless a provider already supplied one.
func (a *Accelerator) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ready {
		return nil
	}

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return fmt.Errorf("gpu: create instance: %w", err)
	}
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		instance.Release()
		return fmt.Errorf("gpu: request adapter: %w", err)
	}
	info := adapter.Info()
	if info.DeviceType == gputypes.DeviceTypeCPU {
		adapter.Release()
		instance.Release()
		return fmt.Errorf("%w: %s", ErrSoftwareAdapter, info.Name)
	}
	device, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		instance.Release()
		return fmt.Errorf("gpu: request device: %w", err)
	}

	a.instance, a.adapter, a.device, a.queue = instance, adapter, device, device.Queue()
	a.ready = true
	rs.Logger().Info("gpu: device ready", "adapter", info.Name, "type", info.DeviceType.String())
	return nil
}

// SetDeviceProvider switches the accelerator to a device shared by the
// host application. The provider's Device and Queue must be *wgpu.Device
// and *wgpu.Queue. Software adapters are rejected.
func (a *Accelerator) SetDeviceProvider(provider gpucontext.DeviceProvider) error {
	if provider == nil {
		return fmt.Errorf("%w: nil provider", ErrProvider)
	}
	if provider.AdapterInfo().Type == gpucontext.AdapterTypeSoftware {
		return fmt.Errorf("%w: %s", ErrSoftwareAdapter, provider.AdapterInfo().Name)
	}
	device, ok := provider.Device().(*wgpu.Device)
	if !ok || device == nil {
		return fmt.Errorf("%w: device is %T", ErrProvider, provider.Device())
	}
	queue, ok := provider.Queue().(*wgpu.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("%w: queue is %T", ErrProvider, provider.Queue())
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.releaseLocked()
	a.device, a.queue = device, queue
	a.external = true
	a.ready = true
	rs.Logger().Info("gpu: switched to shared device", "adapter", provider.AdapterInfo().Name)
	return nil
}

// Close implements software.Accelerator.
func (a *Accelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.releaseLocked()
}

// releaseLocked drops pipelines and any device the accelerator created.
func (a *Accelerator) releaseLocked() {
	a.pipelines.Clear()
	if !a.external {
		if a.device != nil {
			a.device.Release()
		}
		if a.adapter != nil {
			a.adapter.Release()
		}
		if a.instance != nil {
			a.instance.Release()
		}
	}
	a.instance, a.adapter, a.device, a.queue = nil, nil, nil, nil
	a.ready = false
	a.external = false
}

// eligible reports why job cannot run on the device, or nil.
func eligible(job software.Job) error {
	k, ok := kernels[job.Kind]
	switch {
	case !ok:
		return fmt.Errorf("%w: no shader for %s", software.ErrFallbackToCPU, job.Kind)
	case job.DataType != rs.DataTypeUnsigned8 || job.VecSize != 4:
		return fmt.Errorf("%w: %s on %sx%d", software.ErrFallbackToCPU, job.Kind, job.DataType, job.VecSize)
	case len(job.Params) != k.params:
		return fmt.Errorf("%w: %s wants %d params, got %d", software.ErrFallbackToCPU, job.Kind, k.params, len(job.Params))
	case job.Width <= 0 || job.Height <= 0:
		return fmt.Errorf("%w: empty launch", software.ErrFallbackToCPU)
	case len(job.Src) != job.Width*job.Height*4 || len(job.Dst) != len(job.Src):
		return fmt.Errorf("%w: buffer size mismatch", software.ErrFallbackToCPU)
	}
	return nil
}

// Run implements software.Accelerator.
func (a *Accelerator) Run(job software.Job) error {
	if err := eligible(job); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.ready {
		return fmt.Errorf("%w: %w", software.ErrFallbackToCPU, ErrNoDevice)
	}

	k := kernels[job.Kind]
	p, err := a.pipelines.GetOrCreate(job.Kind, func() (*pipeline, error) {
		return newPipeline(a.device, k)
	})
	if err != nil {
		return err
	}
	return a.dispatch(p, job)
}

// dispatch uploads the job, runs one compute pass and reads dst back.
// Caller holds a.mu.
func (a *Accelerator) dispatch(p *pipeline, job software.Job) error {
	size := uint64(len(job.Src))

	dims := make([]byte, dimsSize)
	binary.LittleEndian.PutUint32(dims[0:], uint32(job.Width))
	binary.LittleEndian.PutUint32(dims[4:], uint32(job.Height))
	params := rs.NewFieldPacker(len(job.Params) * 4).AddF32s(job.Params...).Bytes()

	var bufs []*wgpu.Buffer
	defer func() {
		for _, b := range bufs {
			b.Release()
		}
	}()
	newBuffer := func(label string, size uint64, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
		b, err := a.device.CreateBuffer(&wgpu.BufferDescriptor{Label: label, Size: size, Usage: usage})
		if err != nil {
			return nil, fmt.Errorf("gpu: create %s buffer: %w", label, err)
		}
		bufs = append(bufs, b)
		return b, nil
	}

	dimsBuf, err := newBuffer("rs-dims", dimsSize, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	paramsBuf, err := newBuffer("rs-params", uint64(len(params)), wgpu.BufferUsageStorage|wgpu.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	srcBuf, err := newBuffer("rs-src", size, wgpu.BufferUsageStorage|wgpu.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	dstBuf, err := newBuffer("rs-dst", size, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	if err != nil {
		return err
	}
	readBuf, err := newBuffer("rs-readback", size, wgpu.BufferUsageMapRead|wgpu.BufferUsageCopyDst)
	if err != nil {
		return err
	}

	q := a.queue
	for _, w := range []struct {
		buf  *wgpu.Buffer
		data []byte
	}{{dimsBuf, dims}, {paramsBuf, params}, {srcBuf, job.Src}} {
		if err := q.WriteBuffer(w.buf, 0, w.data); err != nil {
			return fmt.Errorf("gpu: upload: %w", err)
		}
	}

	bg, err := a.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "rs-bind-group",
		Layout: p.bindLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: dimsBuf, Size: dimsSize},
			{Binding: 1, Buffer: paramsBuf, Size: uint64(len(params))},
			{Binding: 2, Buffer: srcBuf, Size: size},
			{Binding: 3, Buffer: dstBuf, Size: size},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create bind group: %w", err)
	}
	defer bg.Release()

	enc, err := a.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("gpu: create encoder: %w", err)
	}
	pass, err := enc.BeginComputePass(nil)
	if err != nil {
		return fmt.Errorf("gpu: begin compute pass: %w", err)
	}
	pass.SetPipeline(p.compute)
	pass.SetBindGroup(0, bg, nil)
	pass.Dispatch(groups(job.Width), groups(job.Height), 1)
	if err := pass.End(); err != nil {
		return fmt.Errorf("gpu: end compute pass: %w", err)
	}
	enc.CopyBufferToBuffer(dstBuf, 0, readBuf, 0, size)
	cmd, err := enc.Finish()
	if err != nil {
		return fmt.Errorf("gpu: finish encoder: %w", err)
	}
	if _, err := q.Submit(cmd); err != nil {
		return fmt.Errorf("gpu: submit: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), mapTimeout)
	defer cancel()
	if err := readBuf.Map(ctx, wgpu.MapModeRead, 0, size); err != nil {
		return fmt.Errorf("gpu: map readback: %w", err)
	}
	defer func() { _ = readBuf.Unmap() }()
	rng, err := readBuf.MappedRange(0, size)
	if err != nil {
		return fmt.Errorf("gpu: mapped range: %w", err)
	}
	copy(job.Dst, rng.Bytes())
	rng.Release()
	return nil
}

// groups returns the workgroup count covering n cells.
func groups(n int) uint32 {
	return uint32((n + workgroupSize - 1) / workgroupSize)
}
