// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

//go:build gpu

package similarity

import (
	"sync"
	"time"
	"unsafe"

	"github.com/openfluke/webgpu/wgpu"
	"github.com/pkg/errors"

	"github.com/strops/go-strops/strops"
)

// Builds tagged "gpu" fix the batch backend to a WebGPU device: one thread
// per pair, the whole batch in one dispatch. There is no CPU fallback in
// this configuration; a missing adapter surfaces as ErrMissingGPU.
var activeBackend backend = &deviceBackend{}

// gpuMaxStringLen is the per-string byte limit of the device kernel, set by
// the fixed-size DP row in workgroup-private memory.
const gpuMaxStringLen = 255

type deviceBackend struct {
	once     sync.Once
	device   *wgpu.Device
	queue    *wgpu.Queue
	pipeline *wgpu.ComputePipeline
	initErr  error
}

func (g *deviceBackend) init() {
	inst := wgpu.CreateInstance(nil)
	if inst == nil {
		g.initErr = strops.ErrMissingGPU
		return
	}
	adapter, err := inst.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil || adapter == nil {
		g.initErr = strops.ErrMissingGPU
		return
	}
	defer adapter.Release()

	g.device, err = adapter.RequestDevice(&wgpu.DeviceDescriptor{})
	if err != nil {
		g.initErr = errors.Wrap(err, "request device")
		return
	}
	g.queue = g.device.GetQueue()

	shader, err := g.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "LevenshteinShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: levenshteinShaderSrc},
	})
	if err != nil {
		g.initErr = errors.Wrap(err, "compile shader")
		return
	}
	g.pipeline, err = g.device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label: "LevenshteinPipeline",
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     shader,
			EntryPoint: "main",
		},
	})
	if err != nil {
		g.initErr = errors.Wrap(err, "create pipeline")
	}
}

func (g *deviceBackend) distances(a, b strops.Sequence, bound uint, alloc strops.Allocator, results []uint64) error {
	g.once.Do(g.init)
	if g.initErr != nil {
		return g.initErr
	}
	count := a.Count()
	al := allocatorOrDefault(alloc)
	dataA, offsA, err := flatten(a, al)
	if err != nil {
		return err
	}
	dataB, offsB, err := flatten(b, al)
	if err != nil {
		return err
	}

	dev, queue := g.device, g.queue
	mk := func(label string, size int, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
		return dev.CreateBuffer(&wgpu.BufferDescriptor{
			Label: label,
			Size:  uint64(size),
			Usage: usage,
		})
	}
	storage := wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst
	bufDataA, err := mk("lev_data_a", len(dataA), storage)
	if err != nil {
		return errors.Wrap(err, "alloc device buffer")
	}
	defer bufDataA.Release()
	bufOffsA, err := mk("lev_offs_a", len(offsA)*4, storage)
	if err != nil {
		return errors.Wrap(err, "alloc device buffer")
	}
	defer bufOffsA.Release()
	bufDataB, err := mk("lev_data_b", len(dataB), storage)
	if err != nil {
		return errors.Wrap(err, "alloc device buffer")
	}
	defer bufDataB.Release()
	bufOffsB, err := mk("lev_offs_b", len(offsB)*4, storage)
	if err != nil {
		return errors.Wrap(err, "alloc device buffer")
	}
	defer bufOffsB.Release()
	bufOut, err := mk("lev_out", count*4, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	if err != nil {
		return errors.Wrap(err, "alloc device buffer")
	}
	defer bufOut.Release()
	bufParams, err := mk("lev_params", 8, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
	if err != nil {
		return errors.Wrap(err, "alloc device buffer")
	}
	defer bufParams.Release()
	readback, err := mk("lev_readback", count*4, wgpu.BufferUsageCopyDst|wgpu.BufferUsageMapRead)
	if err != nil {
		return errors.Wrap(err, "alloc device buffer")
	}
	defer readback.Release()

	queue.WriteBuffer(bufDataA, 0, dataA)
	queue.WriteBuffer(bufOffsA, 0, u32Bytes(offsA))
	queue.WriteBuffer(bufDataB, 0, dataB)
	queue.WriteBuffer(bufOffsB, 0, u32Bytes(offsB))
	params := [2]uint32{uint32(count), uint32(bound)}
	queue.WriteBuffer(bufParams, 0, unsafe.Slice((*byte)(unsafe.Pointer(&params[0])), 8))

	bg, err := dev.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "lev_bg",
		Layout: g.pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: bufDataA, Offset: 0, Size: bufDataA.GetSize()},
			{Binding: 1, Buffer: bufOffsA, Offset: 0, Size: bufOffsA.GetSize()},
			{Binding: 2, Buffer: bufDataB, Offset: 0, Size: bufDataB.GetSize()},
			{Binding: 3, Buffer: bufOffsB, Offset: 0, Size: bufOffsB.GetSize()},
			{Binding: 4, Buffer: bufOut, Offset: 0, Size: bufOut.GetSize()},
			{Binding: 5, Buffer: bufParams, Offset: 0, Size: bufParams.GetSize()},
		},
	})
	if err != nil {
		return errors.Wrap(err, "create bind group")
	}
	defer bg.Release()

	enc, err := dev.CreateCommandEncoder(nil)
	if err != nil {
		return errors.Wrap(err, "create encoder")
	}
	pass := enc.BeginComputePass(nil)
	pass.SetPipeline(g.pipeline)
	pass.SetBindGroup(0, bg, nil)
	pass.DispatchWorkgroups((uint32(count)+63)/64, 1, 1)
	pass.End()
	enc.CopyBufferToBuffer(bufOut, 0, readback, 0, uint64(count*4))
	cb, err := enc.Finish(nil)
	enc.Release()
	if err != nil {
		return errors.Wrap(err, "encode commands")
	}
	queue.Submit(cb)
	cb.Release()

	done := false
	readback.MapAsync(wgpu.MapModeRead, 0, uint64(count*4), func(wgpu.BufferMapAsyncStatus) { done = true })
	for i := 0; i < 10000 && !done; i++ {
		dev.Poll(true, nil)
		time.Sleep(100 * time.Microsecond)
	}
	if !done {
		return errors.New("similarity: device did not complete batch")
	}
	mapped := readback.GetMappedRange(0, 0)
	out := unsafe.Slice((*uint32)(unsafe.Pointer(&mapped[0])), count)
	for i := 0; i < count; i++ {
		results[i] = uint64(out[i])
	}
	readback.Unmap()
	return nil
}

// scores has no device kernel yet; the "gpu" build rejects alignment
// batches rather than silently running them on the host.
// TODO: port needlemanWunschScore to WGSL once the distance kernel settles.
func (g *deviceBackend) scores(a, b strops.Sequence, subs *SubstitutionMatrix, gap int8, alloc strops.Allocator, results []int64) error {
	return strops.ErrUnsupported
}

// flatten packs a sequence into the tape wire shape the kernel reads:
// concatenated bytes plus count+1 u32 offsets. Host staging comes from the
// caller's allocator like every other scratch buffer; the data buffer is
// padded to the 4-byte granularity device buffers require, with the pad
// bytes past offs[count] never addressed by the kernel.
func flatten(seq strops.Sequence, alloc strops.Allocator) ([]byte, []uint32, error) {
	count := seq.Count()
	offs, err := allocUint32(alloc, count+1)
	if err != nil {
		return nil, nil, err
	}
	total := 0
	offs[0] = 0
	for i := 0; i < count; i++ {
		n := len(seq.At(i))
		if n > gpuMaxStringLen {
			return nil, nil, strops.ErrUnsupported
		}
		total += n
		offs[i+1] = uint32(total)
	}
	data, err := alloc.Alloc(pad4(total))
	if err != nil {
		return nil, nil, err
	}
	pos := 0
	for i := 0; i < count; i++ {
		pos += copy(data[pos:], seq.At(i))
	}
	for ; pos < len(data); pos++ {
		data[pos] = 0
	}
	return data, offs, nil
}

// allocUint32 carves an n-element uint32 staging slice out of an Allocator,
// rejecting misaligned buffers as failed allocations.
func allocUint32(a strops.Allocator, n int) ([]uint32, error) {
	buf, err := a.Alloc(n * 4)
	if err != nil {
		return nil, err
	}
	if uintptr(unsafe.Pointer(&buf[0]))%4 != 0 {
		return nil, strops.ErrBadAlloc
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&buf[0])), n), nil
}

func pad4(n int) int {
	if n == 0 {
		return 4
	}
	return (n + 3) &^ 3
}

func u32Bytes(v []uint32) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*4)
}

const levenshteinShaderSrc = `
struct Params {
    count: u32,
    bound: u32,
};

@group(0) @binding(0) var<storage, read> data_a: array<u32>;
@group(0) @binding(1) var<storage, read> offs_a: array<u32>;
@group(0) @binding(2) var<storage, read> data_b: array<u32>;
@group(0) @binding(3) var<storage, read> offs_b: array<u32>;
@group(0) @binding(4) var<storage, read_write> results: array<u32>;
@group(0) @binding(5) var<uniform> params: Params;

fn byte_a(i: u32) -> u32 {
    return (data_a[i >> 2u] >> ((i & 3u) * 8u)) & 0xffu;
}

fn byte_b(i: u32) -> u32 {
    return (data_b[i >> 2u] >> ((i & 3u) * 8u)) & 0xffu;
}

@compute @workgroup_size(64)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let pair = gid.x;
    if (pair >= params.count) { return; }

    let a0 = offs_a[pair];
    let la = offs_a[pair + 1u] - a0;
    let b0 = offs_b[pair];
    let lb = offs_b[pair + 1u] - b0;

    var bound = params.bound;
    if (bound == 0u) { bound = 0xffffffffu; }

    var row: array<u32, 256>;
    for (var j = 0u; j <= lb; j = j + 1u) {
        row[j] = j;
    }
    for (var i = 1u; i <= la; i = i + 1u) {
        var diag = row[0u];
        row[0u] = i;
        var row_min = i;
        for (var j = 1u; j <= lb; j = j + 1u) {
            var cost = 1u;
            if (byte_a(a0 + i - 1u) == byte_b(b0 + j - 1u)) { cost = 0u; }
            var d = diag + cost;
            d = min(d, row[j] + 1u);
            d = min(d, row[j - 1u] + 1u);
            diag = row[j];
            row[j] = d;
            row_min = min(row_min, d);
        }
        if (row_min >= bound) {
            results[pair] = bound;
            return;
        }
    }
    results[pair] = min(row[lb], bound);
}
`
