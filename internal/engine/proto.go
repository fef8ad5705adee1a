package engine

// Size is the interior extent of a hollow block.
type Size struct {
	Width  int
	Height int
}

// ProtoKind tags the closed set of block prototypes.
type ProtoKind uint8

const (
	// Wall is a static, solid block.
	Wall ProtoKind = iota
	// Box is a hollow block.
	Box
	// Alias is a solid block that transfers enterings to its reference.
	Alias
	// Infinity is a solid block that resolves infinite exits by
	// transferring them to its reference.
	Infinity
	// Epsilon is a hollow block that resolves infinite enterings into
	// its reference.
	Epsilon
	// Void is a static, hollow block: blocks inside it may move, but
	// nothing may enter or exit it.
	Void
)

func (k ProtoKind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Box:
		return "box"
	case Alias:
		return "alias"
	case Infinity:
		return "infinity"
	case Epsilon:
		return "epsilon"
	case Void:
		return "void"
	default:
		return "unknown"
	}
}

// Proto is the immutable prototype of a block: a kind plus the fields the
// kind carries. Hollow kinds carry Size; referring kinds carry Reference.
type Proto struct {
	Kind      ProtoKind
	Size      Size
	Reference BlockKey
}

// WallProto returns a wall prototype.
func WallProto() Proto {
	return Proto{Kind: Wall}
}

// BoxProto returns a box prototype of the given interior size.
func BoxProto(size Size) Proto {
	return Proto{Kind: Box, Size: size}
}

// AliasProto returns an alias prototype referring to the given block.
func AliasProto(reference BlockKey) Proto {
	return Proto{Kind: Alias, Reference: reference}
}

// InfinityProto returns an infinity prototype referring to the given block.
func InfinityProto(reference BlockKey) Proto {
	return Proto{Kind: Infinity, Reference: reference}
}

// EpsilonProto returns an epsilon prototype with the given interior size,
// referring to the given block.
func EpsilonProto(size Size, reference BlockKey) Proto {
	return Proto{Kind: Epsilon, Size: size, Reference: reference}
}

// VoidProto returns a void prototype of the given interior size.
func VoidProto(size Size) Proto {
	return Proto{Kind: Void, Size: size}
}

// InteriorSize returns the interior extent, which is the zero Size for
// solid kinds.
func (p Proto) InteriorSize() Size {
	switch p.Kind {
	case Box, Epsilon, Void:
		return p.Size
	default:
		return Size{}
	}
}

// Width returns the interior width.
func (p Proto) Width() int {
	return p.InteriorSize().Width
}

// Height returns the interior height.
func (p Proto) Height() int {
	return p.InteriorSize().Height
}

// IsSolid reports whether the block has no interior and cannot be entered.
func (p Proto) IsSolid() bool {
	switch p.Kind {
	case Wall, Alias, Infinity:
		return true
	default:
		return false
	}
}

// IsHollow reports whether the block has an interior grid.
func (p Proto) IsHollow() bool {
	switch p.Kind {
	case Box, Epsilon, Void:
		return true
	default:
		return false
	}
}

// IsStatic reports whether the block can never be pushed or eaten.
func (p Proto) IsStatic() bool {
	return p.Kind == Wall || p.Kind == Void
}

// IsVoid reports whether the block is a void.
func (p Proto) IsVoid() bool {
	return p.Kind == Void
}

// Ref returns the referenced block for alias, infinity and epsilon kinds.
func (p Proto) Ref() (BlockKey, bool) {
	switch p.Kind {
	case Alias, Infinity, Epsilon:
		return p.Reference, true
	default:
		return BlockKey{}, false
	}
}

// CanAlias reports whether an alias may refer to this prototype.
func (p Proto) CanAlias() bool {
	return p.Kind == Box || p.Kind == Epsilon
}

// CanInfinity reports whether an infinity may refer to this prototype.
func (p Proto) CanInfinity() bool {
	return p.Kind == Box || p.Kind == Infinity || p.Kind == Epsilon
}

// CanEpsilon reports whether an epsilon may refer to this prototype.
func (p Proto) CanEpsilon() bool {
	return p.Kind == Box || p.Kind == Epsilon
}

func (p Proto) contains(x, y int) bool {
	size := p.InteriorSize()
	return x >= 0 && y >= 0 && x < size.Width && y < size.Height
}
