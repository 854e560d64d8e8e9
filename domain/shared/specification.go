package shared

// Specification encapsulates a business rule for selecting entities.
// Specifications compose with And, Or and Not, and are evaluated
// in memory against the domain type they are written for.
type Specification[T any] interface {
	// IsSatisfiedBy checks whether an entity satisfies the rule.
	IsSatisfiedBy(entity T) bool
}

// AndSpecification is the logical AND of two specifications.
type AndSpecification[T any] struct {
	Left  Specification[T]
	Right Specification[T]
}

func (spec AndSpecification[T]) IsSatisfiedBy(entity T) bool {
	return spec.Left.IsSatisfiedBy(entity) && spec.Right.IsSatisfiedBy(entity)
}

// And combines two specifications, both of which must hold.
func And[T any](left, right Specification[T]) Specification[T] {
	return AndSpecification[T]{
		Left:  left,
		Right: right,
	}
}

// OrSpecification is the logical OR of two specifications.
type OrSpecification[T any] struct {
	Left  Specification[T]
	Right Specification[T]
}

func (spec OrSpecification[T]) IsSatisfiedBy(entity T) bool {
	return spec.Left.IsSatisfiedBy(entity) || spec.Right.IsSatisfiedBy(entity)
}

// Or combines two specifications, either of which may hold.
func Or[T any](left, right Specification[T]) Specification[T] {
	return OrSpecification[T]{
		Left:  left,
		Right: right,
	}
}

// NotSpecification negates an inner specification.
type NotSpecification[T any] struct {
	Spec Specification[T]
}

func (spec NotSpecification[T]) IsSatisfiedBy(entity T) bool {
	return !spec.Spec.IsSatisfiedBy(entity)
}

// Not negates a specification.
func Not[T any](inner Specification[T]) Specification[T] {
	return NotSpecification[T]{
		Spec: inner,
	}
}
