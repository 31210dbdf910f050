package network

import (
	"weak"

	"github.com/lexfrei/go-unipy/model"
)

// serviceRef binds entities to the service that produced them without
// keeping the service alive.
type serviceRef struct {
	ptr weak.Pointer[Service]
}

func (r *serviceRef) Valid() bool {
	return r.ptr.Value() != nil
}

// BoundService returns the service an entity was fetched through,
// or nil when it is unbound or the service is gone.
func BoundService(obj *model.Object) *Service {
	ref, ok := obj.Binding().(*serviceRef)
	if !ok {
		return nil
	}

	return ref.ptr.Value()
}

func boundService(obj *model.Object) (*Service, error) {
	svc := BoundService(obj)
	if svc == nil {
		return nil, ErrUnbound
	}

	return svc, nil
}
