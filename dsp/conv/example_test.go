package conv_test

import (
	"fmt"

	"github.com/cwbudde/algo-conv/dsp/conv"
)

func ExampleNewEngine() {
	signal := []float64{0.1, -3.2, 1.5, 7.0, 5.7}
	kernel := []float64{0.7, -3.4, 1.0}

	e, err := conv.NewEngine(signal, kernel)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, m := range []conv.Method{
		conv.MethodInputSide,
		conv.MethodOutputSide,
		conv.MethodFastMultiply,
		conv.MethodSpectral,
		conv.MethodFramedSpectral(2),
	} {
		y, err := e.Convolve(m)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("%-18s %.2f\n", m, y)
	}

	// Output:
	// input-side         [0.07 -2.58 12.03 -3.40 -18.31 -12.38 5.70]
	// output-side        [0.07 -2.58 12.03 -3.40 -18.31 -12.38 5.70]
	// fast-multiply      [0.07 -2.58 12.03 -3.40 -18.31 -12.38 5.70]
	// spectral           [0.07 -2.58 12.03 -3.40 -18.31 -12.38 5.70]
	// framed-spectral(2) [0.07 -2.58 12.03 -3.40 -18.31 -12.38 5.70]
}

func ExampleConvolve() {
	// Simple moving average filter
	signal := []float64{1, 2, 3, 4, 5, 4, 3, 2, 1}
	kernel := []float64{0.25, 0.5, 0.25}

	result, _ := conv.Convolve(signal, kernel)

	fmt.Printf("Output length: %d\n", len(result))
	fmt.Printf("%.2f\n", result)

	// Output:
	// Output length: 11
	// [0.25 1.00 2.00 3.00 4.00 4.50 4.00 3.00 2.00 1.00 0.25]
}

func ExampleConvolveMode() {
	result, _ := conv.ConvolveMode([]float64{1, 2, 3}, []float64{0, 1, 0.5}, conv.ModeSame)
	fmt.Println(result)

	// Output:
	// [1 2.5 4]
}

func ExampleFastMultiply() {
	// (1 + 2z)(3 + 4z) = 3 + 10z + 8z^2
	product, _ := conv.FastMultiply([]float64{1, 2}, []float64{3, 4})
	fmt.Println(product)

	// Output:
	// [3 10 8]
}

func ExampleCorrelate() {
	// Find where a template occurs in a signal.
	signal := []float64{0, 0, 0, 1, 2, 1, 0, 0}
	template := []float64{1, 2, 1}

	corr, _ := conv.Correlate(signal, template)
	index, value := conv.FindPeak(corr)

	fmt.Printf("Lag: %d\n", conv.LagFromIndex(index, len(template)))
	fmt.Printf("Peak: %.1f\n", value)

	// Output:
	// Lag: 3
	// Peak: 6.0
}

func ExampleParseMethod() {
	m, err := conv.ParseMethod("ola", 4096, 0)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(m)

	_, err = conv.ParseMethod("winograd", 0, 0)
	fmt.Println(err)

	// Output:
	// framed-spectral(4096)
	// conv: unknown method: "winograd"
}
