//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// pipeline holds the device objects of one compute kernel. Every kernel
// uses the same layout: dims uniform, params, src, dst.
type pipeline struct {
	shader     *wgpu.ShaderModule
	bindLayout *wgpu.BindGroupLayout
	pipeLayout *wgpu.PipelineLayout
	compute    *wgpu.ComputePipeline
}

func newPipeline(device *wgpu.Device, k kernel) (*pipeline, error) {
	p := &pipeline{}
	var err error

	p.shader, err = device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: k.label,
		WGSL:  k.source,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create %s shader: %w", k.label, err)
	}

	p.bindLayout, err = device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: k.label + "-bind-layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			bufferEntry(0, gputypes.BufferBindingTypeUniform),
			bufferEntry(1, gputypes.BufferBindingTypeReadOnlyStorage),
			bufferEntry(2, gputypes.BufferBindingTypeReadOnlyStorage),
			bufferEntry(3, gputypes.BufferBindingTypeStorage),
		},
	})
	if err != nil {
		p.release()
		return nil, fmt.Errorf("gpu: create %s bind layout: %w", k.label, err)
	}

	p.pipeLayout, err = device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            k.label + "-layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		p.release()
		return nil, fmt.Errorf("gpu: create %s pipeline layout: %w", k.label, err)
	}

	p.compute, err = device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label:      k.label,
		Layout:     p.pipeLayout,
		Module:     p.shader,
		EntryPoint: "main",
	})
	if err != nil {
		p.release()
		return nil, fmt.Errorf("gpu: create %s pipeline: %w", k.label, err)
	}
	return p, nil
}

func bufferEntry(binding uint32, typ gputypes.BufferBindingType) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: wgpu.ShaderStageCompute,
		Buffer:     &gputypes.BufferBindingLayout{Type: typ},
	}
}

// release destroys the device objects in reverse creation order.
func (p *pipeline) release() {
	if p.compute != nil {
		p.compute.Release()
	}
	if p.pipeLayout != nil {
		p.pipeLayout.Release()
	}
	if p.bindLayout != nil {
		p.bindLayout.Release()
	}
	if p.shader != nil {
		p.shader.Release()
	}
	*p = pipeline{}
}
