package kernel

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// VertexStride is the byte size of one interleaved Vertex: two float32x3.
const VertexStride = 24

// IndexFormat is the index buffer format matching Mesh.Indices.
const IndexFormat = gputypes.IndexFormatUint32

// VertexLayout describes the vertex buffer produced by Mesh.VertexBytes:
// position at shader location 0, normal at location 1.
func VertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: VertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
			{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1}, // normal
		},
	}
}

// PrimitiveState is the primitive assembly the winding order is built for:
// triangle lists, counter-clockwise front faces, back faces culled.
func PrimitiveState() gputypes.PrimitiveState {
	return gputypes.PrimitiveState{
		Topology:  gputypes.PrimitiveTopologyTriangleList,
		FrontFace: gputypes.FrontFaceCCW,
		CullMode:  gputypes.CullModeBack,
	}
}

// VertexBytes packs the vertices little-endian in the VertexLayout format.
func (m *Mesh) VertexBytes() []byte {
	buf := make([]byte, len(m.Vertices)*VertexStride)
	off := 0
	for _, v := range m.Vertices {
		for _, f := range v.Position {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f))
			off += 4
		}
		for _, f := range v.Normal {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f))
			off += 4
		}
	}
	return buf
}

// IndexBytes packs the indices little-endian as IndexFormat.
func (m *Mesh) IndexBytes() []byte {
	buf := make([]byte, len(m.Indices)*int(IndexFormat.Size()))
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}
