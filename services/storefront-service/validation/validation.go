// Package validation registers the storefront enum checks with gin's binder.
package validation

import (
	"fmt"
	"sync"

	"github.com/corexathletics/storefront/pkg/catalog"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var once sync.Once

// Register adds the catalog_size and catalog_color tags. It is safe to call
// more than once.
func Register() error {
	var err error
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		if err = v.RegisterValidation("catalog_size", func(fl validator.FieldLevel) bool {
			_, perr := catalog.ParseSize(fl.Field().String())
			return perr == nil
		}); err != nil {
			return
		}
		err = v.RegisterValidation("catalog_color", func(fl validator.FieldLevel) bool {
			_, perr := catalog.ParseColor(fl.Field().String())
			return perr == nil
		})
	})
	return err
}
