package plsda_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/plsda"
	"github.com/katalvlaran/plsda/cv"
	"github.com/katalvlaran/plsda/matrix"
)

func Example() {
	m, err := matrix.NewFeatureMatrix(
		[]string{"lactate", "glucose", "urea"},
		[]string{"p1", "p2", "p3", "h1", "h2", "h3"},
		[][]float64{
			{5, 3, 4, 4, 5, 3},
			{9, 10, 11, 1, 2, 3},
			{2, 2, 3, 3, 2, 3},
		})
	if err != nil {
		fmt.Println(err)
		return
	}
	labels := []string{"patient", "patient", "patient", "healthy", "healthy", "healthy"}

	res, err := plsda.CrossValidate(context.Background(), m, labels, 1, cv.LeaveOneOut())
	if err != nil {
		fmt.Println(err)
		return
	}
	_, ranking, err := plsda.FitPLSDA(m, labels, 1)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("accuracy: %.2f\n", res.Overall)
	fmt.Println("top feature:", ranking.Top(1)[0].Feature)
	// Output:
	// accuracy: 1.00
	// top feature: glucose
}
