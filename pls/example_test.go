package pls_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/plsda/pls"
)

// ExampleFit fits a one-component model on two tiny classes and classifies a new
// sample.
func ExampleFit() {
	x := mat.NewDense(4, 2, []float64{
		0.0, 1.0,
		0.2, 0.9,
		5.0, 1.1,
		5.1, 0.8,
	})
	y := mat.NewDense(4, 2, []float64{
		1, 0,
		1, 0,
		0, 1,
		0, 1,
	})

	model, err := pls.Fit(x, y, 1)
	if err != nil {
		fmt.Println("fit:", err)
		return
	}
	class, err := model.Predict([]float64{4.8, 1.0})
	if err != nil {
		fmt.Println("predict:", err)
		return
	}
	fmt.Println("components:", model.Components())
	fmt.Println("class:", class)
	// Output:
	// components: 1
	// class: 1
}
