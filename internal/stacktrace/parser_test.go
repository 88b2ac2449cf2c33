package stacktrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Empty(t *testing.T) {
	assert.Nil(t, Parse(""))
	assert.Nil(t, Parse("   \n  "))
}

func TestParse_V8(t *testing.T) {
	stack := `Error: Expected 1 to be 2.
    at <Jasmine>
    at UserContext.<anonymous> (/work/specs/login.spec.js:12:23)
    at /work/node_modules/helper/index.js:4:9
    at async Runner.run (file:///work/runner.mjs:88:5)
    at new Foo (/work/specs/foo.spec.js:1:1)`

	frames := Parse(stack)
	require.Len(t, frames, 4)

	assert.Equal(t, Frame{Function: "UserContext.<anonymous>", File: "/work/specs/login.spec.js", Line: 12, Column: 23}, frames[0])
	assert.Equal(t, Frame{File: "/work/node_modules/helper/index.js", Line: 4, Column: 9}, frames[1])
	assert.Equal(t, Frame{Function: "Runner.run", File: "file:///work/runner.mjs", Line: 88, Column: 5}, frames[2])
	assert.Equal(t, "new Foo", frames[3].Function)
	assert.Equal(t, "/work/specs/foo.spec.js", frames[3].File)
}

func TestParse_V8SkipsNativeFrames(t *testing.T) {
	stack := "Error\n    at Array.forEach (<anonymous>)\n    at process.processTicksAndRejections (node:internal/process/task_queues:95:5)"

	frames := Parse(stack)
	require.Len(t, frames, 1)
	assert.Equal(t, "node:internal/process/task_queues", frames[0].File)
}

func TestParse_WindowsPath(t *testing.T) {
	frames := Parse(`    at Object.<anonymous> (C:\work\specs\a.spec.js:3:4)`)
	require.Len(t, frames, 1)
	assert.Equal(t, `C:\work\specs\a.spec.js`, frames[0].File)
	assert.Equal(t, 3, frames[0].Line)
	assert.Equal(t, 4, frames[0].Column)
}

func TestParse_Gecko(t *testing.T) {
	stack := "expect@/work/node_modules/expect.js:10:3\n@/work/specs/cart.spec.js:40:1"

	frames := Parse(stack)
	require.Len(t, frames, 2)
	assert.Equal(t, "expect", frames[0].Function)
	assert.Equal(t, "/work/specs/cart.spec.js", frames[1].File)
	assert.Equal(t, 40, frames[1].Line)
}

func TestParse_GoPanic(t *testing.T) {
	stack := `panic: boom

goroutine 1 [running]:
main.helper(...)
	/work/pkg/helper.go:12 +0x1d
main.TestCheckout(0xc000102340)
	/work/pkg/checkout_test.go:44 +0x25`

	frames := Parse(stack)
	require.Len(t, frames, 2)
	assert.Equal(t, "/work/pkg/helper.go", frames[0].File)
	assert.Equal(t, "/work/pkg/checkout_test.go", frames[1].File)
	assert.Equal(t, 44, frames[1].Line)
}

func TestParse_Python(t *testing.T) {
	stack := `Traceback (most recent call last):
  File "/work/tests/test_cart.py", line 9, in test_total
    assert total == 3
AssertionError`

	frames := Parse(stack)
	require.Len(t, frames, 1)
	assert.Equal(t, Frame{Function: "test_total", File: "/work/tests/test_cart.py", Line: 9}, frames[0])
}

func TestParse_MessageOnly(t *testing.T) {
	assert.Empty(t, Parse("Expected true to be false."))
}
