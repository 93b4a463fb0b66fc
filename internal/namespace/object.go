package namespace

// Object is an in-memory member. It satisfies Namespace, Class, Callable
// and Typed, so adapters that materialize a snapshot (dump files, stub files)
// and tests can describe any member with one type.
type Object struct {
	ObjName   string
	ObjKind   Kind
	ObjDoc    string
	ObjModule string
	Children  []*Object
	Sig       *Signature
	Type      *Annotation
}

var (
	_ Namespace = (*Object)(nil)
	_ Class     = (*Object)(nil)
	_ Callable  = (*Object)(nil)
	_ Typed     = (*Object)(nil)
)

func (o *Object) Name() string { return o.ObjName }
func (o *Object) Kind() Kind   { return o.ObjKind }
func (o *Object) Doc() string  { return o.ObjDoc }

// Module returns the declaring namespace of a class member.
func (o *Object) Module() string { return o.ObjModule }

func (o *Object) Members() []Member {
	members := make([]Member, 0, len(o.Children))
	for _, child := range o.Children {
		members = append(members, child.member())
	}
	return members
}

// member narrows the dynamic type so that only class objects satisfy Class
// and only callable objects satisfy Callable. The classifier relies on type
// assertions, and a universal Object would answer yes to all of them.
func (o *Object) member() Member {
	switch {
	case o.ObjKind == KindClass:
		return o
	case o.ObjKind.IsCallable():
		return callableObject{o}
	case o.ObjKind == KindProperty:
		return typedObject{o}
	default:
		return plainObject{o}
	}
}

func (o *Object) Signature() (*Signature, error) {
	if o.Sig == nil {
		return nil, ErrNoSignature
	}
	return o.Sig, nil
}

func (o *Object) Annotation() *Annotation { return o.Type }

type plainObject struct{ o *Object }

func (p plainObject) Name() string { return p.o.ObjName }
func (p plainObject) Kind() Kind   { return p.o.ObjKind }
func (p plainObject) Doc() string  { return p.o.ObjDoc }

type callableObject struct{ o *Object }

func (c callableObject) Name() string                   { return c.o.ObjName }
func (c callableObject) Kind() Kind                     { return c.o.ObjKind }
func (c callableObject) Doc() string                    { return c.o.ObjDoc }
func (c callableObject) Signature() (*Signature, error) { return c.o.Signature() }

type typedObject struct{ o *Object }

func (t typedObject) Name() string            { return t.o.ObjName }
func (t typedObject) Kind() Kind              { return t.o.ObjKind }
func (t typedObject) Doc() string             { return t.o.ObjDoc }
func (t typedObject) Annotation() *Annotation { return t.o.Type }
