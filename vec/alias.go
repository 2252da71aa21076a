package vec

// Named vectors for each component type.
type (
	Byte2 = Vec2[int8]
	Byte3 = Vec3[int8]
	Byte4 = Vec4[int8]

	Short2 = Vec2[int16]
	Short3 = Vec3[int16]
	Short4 = Vec4[int16]

	Int2 = Vec2[int32]
	Int3 = Vec3[int32]
	Int4 = Vec4[int32]

	Long2 = Vec2[int64]
	Long3 = Vec3[int64]
	Long4 = Vec4[int64]

	UByte2 = Vec2[uint8]
	UByte3 = Vec3[uint8]
	UByte4 = Vec4[uint8]

	UShort2 = Vec2[uint16]
	UShort3 = Vec3[uint16]
	UShort4 = Vec4[uint16]

	UInt2 = Vec2[uint32]
	UInt3 = Vec3[uint32]
	UInt4 = Vec4[uint32]

	ULong2 = Vec2[uint64]
	ULong3 = Vec3[uint64]
	ULong4 = Vec4[uint64]

	Float2 = Vec2[float32]
	Float3 = Vec3[float32]
	Float4 = Vec4[float32]

	Double2 = Vec2[float64]
	Double3 = Vec3[float64]
	Double4 = Vec4[float64]
)
