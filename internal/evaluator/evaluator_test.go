package evaluator

import (
	"github.com/bsparks/simple-script/internal/lexer"
	"github.com/bsparks/simple-script/internal/object"
	"github.com/bsparks/simple-script/internal/parser"
	"math"
	"testing"
)

func testEval(t *testing.T, input string) object.Object {
	t.Helper()
	l := lexer.New(input)
	p := parser.New(l, input)
	program := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("parser errors for %q: %v", input, p.Errors())
	}
	env := object.NewEnvironment()

	return Eval(program, env)
}

func testNumberObject(t *testing.T, obj object.Object, expected float64) bool {
	t.Helper()
	result, ok := obj.(*object.Number)
	if !ok {
		t.Errorf("object is not Number. got=%T (%+v)", obj, obj)
		return false
	}
	if result.Value != expected {
		t.Errorf("object has wrong value. got=%v, want=%v", result.Value, expected)
		return false
	}

	return true
}

func testBooleanObject(t *testing.T, obj object.Object, expected bool) bool {
	t.Helper()
	result, ok := obj.(*object.Boolean)
	if !ok {
		t.Errorf("object is not Boolean. got=%T (%+v)", obj, obj)
		return false
	}
	if result.Value != expected {
		t.Errorf("object has wrong value. got=%t, want=%t", result.Value, expected)
		return false
	}
	return true
}

func testNullObject(t *testing.T, obj object.Object) bool {
	t.Helper()
	if obj != NULL {
		t.Errorf("object is not NULL. got=%T (%+v)", obj, obj)
		return false
	}
	return true
}

func TestEvalNumberExpression(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"5", 5},
		{"10", 10},
		{"-5", -5},
		{"-10", -10},
		{"2.5", 2.5},
		{"5 + 5 + 5 + 5 - 10", 10},
		{"2 * 2 * 2 * 2 * 2", 32},
		{"-50 + 100 + -50", 0},
		{"5 * 2 + 10", 20},
		{"5 + 2 * 10", 25},
		{"20 + 2 * -10", 0},
		{"50 / 2 * 2 + 10", 60},
		{"2 * (5 + 10)", 30},
		{"3 * 3 * 3 + 10", 37},
		{"3 * (3 * 3) + 10", 37},
		{"(5 + 10 * 2 + 15 / 3) * 2 + -10", 50},
		{"7 / 2;", 3.5},
		{"0.1 + 0.2", 0.1 + 0.2},
	}

	for _, tt := range tests {
		evaluated := testEval(t, tt.input)
		testNumberObject(t, evaluated, tt.expected)
	}
}

func TestDivisionByZero(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"7 / 0;", "Infinity"},
		{"-7 / 0;", "-Infinity"},
		{"0 / 0;", "NaN"},
	}

	for i, tt := range tests {
		evaluated := testEval(t, tt.input)
		if evaluated.Type() != object.NUMBER_OBJ {
			t.Fatalf("tests[%d] - expected NUMBER, got=%s (%s)", i, evaluated.Type(), evaluated.Inspect())
		}
		if evaluated.Inspect() != tt.expected {
			t.Fatalf("tests[%d] - expected=%q, got=%q", i, tt.expected, evaluated.Inspect())
		}
	}

	if v := testEval(t, "7 / 0").(*object.Number).Value; !math.IsInf(v, 1) {
		t.Fatalf("7 / 0 is not +Inf. got=%v", v)
	}
}

func TestEvalBooleanExpression(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"true", true},
		{"false", false},
		{"1 < 2", true},
		{"1 > 2", false},
		{"1 < 1", false},
		{"1 > 1", false},
		{"1 == 1", true},
		{"1 != 1", false},
		{"1 == 2", false},
		{"1 != 2", true},
		{"0 / 0 == 0 / 0", false},
		{"true == true", true},
		{"false == false", true},
		{"true == false", false},
		{"true != false", true},
		{"false != true", true},
		{"(1 < 2) == true", true},
		{"(1 < 2) == false", false},
		{"(1 > 2) == true", false},
		{"(1 > 2) == false", true},
		{`"a" == "a"`, true},
		{`"a" == "b"`, false},
		{`"a" != "b"`, true},
		{`1 == "1"`, false},
		{`1 != "1"`, true},
		{`true == 1`, false},
		{`[1] == [1]`, false},
		{`let a = [1]; a == a`, true},
	}

	for _, tt := range tests {
		evaluated := testEval(t, tt.input)
		testBooleanObject(t, evaluated, tt.expected)
	}
}

func TestBangOperator(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"!true", false},
		{"!false", true},
		{"!5", false},
		{"!0", false},
		{`!""`, false},
		{"!!true", true},
		{"!!false", false},
		{"!!5", true},
		{"!if (false) << 1 >>", true},
	}

	for _, tt := range tests {
		evaluated := testEval(t, tt.input)
		testBooleanObject(t, evaluated, tt.expected)
	}
}

func TestSingletons(t *testing.T) {
	if testEval(t, "1 < 2") != TRUE {
		t.Fatalf("comparison did not return the TRUE singleton")
	}
	if testEval(t, "!true") != FALSE {
		t.Fatalf("bang did not return the FALSE singleton")
	}
	if testEval(t, "let x = 1;") != NULL {
		t.Fatalf("let did not return the NULL singleton")
	}
}

func TestIfElseExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"if (1 == 1) << 10 >> else << 20 >>;", 10},
		{"if (1 == 2) << 10 >> else << 20 >>;", 20},
		{"if (true) << 10 >>", 10},
		{"if (false) << 10 >>", nil},
		{"if (1) << 10 >>", 10},
		{"if (0) << 10 >>", 10},
		{`if ("") << 10 >>`, 10},
		{"if (1 < 2) << 10 >>", 10},
		{"if (1 > 2) << 10 >>", nil},
		{"if (1 > 2) << 10 >> else << 20 >>", 20},
		{"if (1 < 2) << 10 >> else << 20 >>", 10},
		{"if (if (false) << 1 >>) << 10 >> else << 20 >>", 20},
		{"if (true) << >>", nil},
	}

	for _, tt := range tests {
		evaluated := testEval(t, tt.input)
		number, ok := tt.expected.(int)
		if ok {
			testNumberObject(t, evaluated, float64(number))
		} else {
			testNullObject(t, evaluated)
		}
	}
}

func TestIfBodySharesScope(t *testing.T) {
	evaluated := testEval(t, "if (true) << let x = 5; >>; x")
	testNumberObject(t, evaluated, 5)
}

func TestReturnStatements(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"return 10;", 10},
		{"return 10; 9;", 10},
		{"return 2 * 5; 9;", 10},
		{"9; return 2 * 5; 9;", 10},
		{"if (10 > 1) << return 10; >>", 10},
		{
			`
if (10 > 1) <<
  if (10 > 1) <<
    return 10;
  >>

  return 1;
>>
`,
			10,
		},
		{
			`
let f = fn(x) <<
  return x;
  x + 10;
>>;
f(10);`,
			10,
		},
		{
			`
let f = fn(x) <<
   let result = x + 10;
   return result;
   return 10;
>>;
f(10);`,
			20,
		},
		{
			`
let f = fn(x) <<
  if (x > 5) << return 1 >>
  return 2
>>;
f(10) + f(1) * 10`,
			21,
		},
	}

	for _, tt := range tests {
		evaluated := testEval(t, tt.input)
		testNumberObject(t, evaluated, tt.expected)
	}
}

func TestReturnValueDoesNotLeak(t *testing.T) {
	tests := []string{
		"return 1;",
		"if (true) << return 1 >>",
		"let f = fn() << return 1 >>; f()",
		"let f = fn() << if (true) << return 1 >> >>; [f()][0]",
	}

	for i, input := range tests {
		evaluated := testEval(t, input)
		if _, ok := evaluated.(*object.ReturnValue); ok {
			t.Fatalf("tests[%d] - ReturnValue escaped evaluation", i)
		}
		testNumberObject(t, evaluated, 1)
	}
}

func TestErrorHandling(t *testing.T) {
	tests := []struct {
		input           string
		expectedMessage string
	}{
		{"5 + true;", "type mismatch: NUMBER + BOOLEAN"},
		{"5 + true; 5;", "type mismatch: NUMBER + BOOLEAN"},
		{`1 + "a";`, "type mismatch: NUMBER + STRING"},
		{"-true", "unknown operator: -BOOLEAN"},
		{`-"a"`, "unknown operator: -STRING"},
		{"true + false;", "unknown operator: BOOLEAN + BOOLEAN"},
		{"true < false;", "unknown operator: BOOLEAN < BOOLEAN"},
		{"5; true + false; 5", "unknown operator: BOOLEAN + BOOLEAN"},
		{"if (10 > 1) << true + false; >>", "unknown operator: BOOLEAN + BOOLEAN"},
		{
			`
if (10 > 1) <<
  if (10 > 1) <<
    return true + false;
  >>

  return 1;
>>
`,
			"unknown operator: BOOLEAN + BOOLEAN",
		},
		{"foobar", "identifier not found: foobar"},
		{"{Map complete}", "identifier not found: Map complete"},
		{`"Hello" - "World"`, "unknown operator: STRING - STRING"},
		{`<<"name": "Monkey">>[fn(x) << x >>];`, "unusable as hash key: FUNCTION"},
		{`<<[1]: 2>>`, "unusable as hash key: ARRAY"},
		{`[1, 2, 3]["a"]`, "index operator not supported: ARRAY[STRING]"},
		{`5[0]`, "index operator not supported: NUMBER[NUMBER]"},
		{`"abc"[0]`, "index operator not supported: STRING[NUMBER]"},
		{`5(1)`, "not a function: NUMBER"},
		{`"f"()`, "not a function: STRING"},
		{`let f = fn(x, y) << x >>; f(1)`, "wrong number of arguments: want=2, got=1"},
		{`let f = fn() << 1 >>; f(1, 2)`, "wrong number of arguments: want=0, got=2"},
		{`let x = missing; x`, "identifier not found: missing"},
		{`[1, missing, 3]`, "identifier not found: missing"},
		{`round(missing)`, "identifier not found: missing"},
		{`missing(1)`, "identifier not found: missing"},
		{`<<"a": missing>>`, "identifier not found: missing"},
		{`<<missing: 1>>`, "identifier not found: missing"},
		{`missing[0]`, "identifier not found: missing"},
		{`[1][missing]`, "identifier not found: missing"},
	}

	for i, tt := range tests {
		evaluated := testEval(t, tt.input)

		errObj, ok := evaluated.(*object.Error)
		if !ok {
			t.Errorf("tests[%d] - no error object returned. got=%T(%+v)", i, evaluated, evaluated)
			continue
		}

		if errObj.Message != tt.expectedMessage {
			t.Errorf("tests[%d] - wrong error message. expected=%q, got=%q", i, tt.expectedMessage, errObj.Message)
		}
	}
}

func TestErrorPropagatesAsSameObject(t *testing.T) {
	input := `1 + "a"`
	l := lexer.New(input)
	p := parser.New(l, input)
	program := p.ParseProgram()
	env := object.NewEnvironment()

	inner := Eval(program, env)
	if !isError(inner) {
		t.Fatalf("expected an error, got=%s", inner.Inspect())
	}

	// bind the error and feed it through every composite form
	env.Set("err", inner)
	wrapped := []string{
		`-err`,
		`err + 1`,
		`[err]`,
		`let f = fn(x) << x * 2 >>; f(err)`,
		`if (err) << 1 >> else << 2 >>`,
		`<<"k": err>>["k"]`,
		`let y = err; y`,
	}

	for i, src := range wrapped {
		l := lexer.New(src)
		p := parser.New(l, src)
		evaluated := Eval(p.ParseProgram(), env)
		if evaluated != inner {
			t.Fatalf("tests[%d] - %q did not return the same error object. got=%s", i, src, evaluated.Inspect())
		}
	}
}

func TestLetStatements(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"let a = 5; a;", 5},
		{"let a = 5 * 5; a;", 25},
		{"let a = 5; let b = a; b;", 5},
		{"let a = 5; let b = a; let c = a + b + 5; c;", 15},
		{"let a = 1; let a = a + 1; a", 2},
	}

	for _, tt := range tests {
		testNumberObject(t, testEval(t, tt.input), tt.expected)
	}
}

func TestBraceIdentifiers(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"let {stage.vft.Score} = 1; {stage.vft.Score} + 1;", 2},
		{"let {Map complete} = 2; {Map complete};", 2},
		{"let stage.vft.Score = 3; {stage.vft.Score};", 3},
		{"let {let} = 4; {let};", 4},
		{"let {1st} = 5; {1st} * 2;", 10},
		{"let f = fn({a b}) << {a b} + 1 >>; f(6)", 7},
	}

	for _, tt := range tests {
		testNumberObject(t, testEval(t, tt.input), tt.expected)
	}
}

func TestFunctionObject(t *testing.T) {
	input := "fn(x) << x + 2; >>;"

	evaluated := testEval(t, input)
	fn, ok := evaluated.(*object.Function)
	if !ok {
		t.Fatalf("object is not Function. got=%T (%+v)", evaluated, evaluated)
	}

	if len(fn.Parameters) != 1 {
		t.Fatalf("function has wrong parameters. Parameters=%+v", fn.Parameters)
	}

	if fn.Parameters[0].String() != "x" {
		t.Fatalf("parameter is not 'x'. got=%q", fn.Parameters[0])
	}

	expectedBody := "<< (x + 2); >>"
	if fn.Body.String() != expectedBody {
		t.Fatalf("body is not %q. got=%q", expectedBody, fn.Body.String())
	}

	if fn.Inspect() != "fn(x) << (x + 2); >>" {
		t.Fatalf("inspect wrong. got=%q", fn.Inspect())
	}
}

func TestFunctionApplication(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"let identity = fn(x) << x; >>; identity(5);", 5},
		{"let identity = fn(x) << return x; >>; identity(5);", 5},
		{"let double = fn(x) << x * 2; >>; double(5);", 10},
		{"let add = fn(x, y) << x + y; >>; add(5, 5);", 10},
		{"let add = fn(x, y) << x + y; >>; add(5 + 5, add(5, 5));", 20},
		{"fn(x) << x; >>(5)", 5},
		{"let f = fn() << >>; if (f()) << 1 >> else << 2 >>", 2},
	}

	for _, tt := range tests {
		testNumberObject(t, testEval(t, tt.input), tt.expected)
	}
}

func TestClosures(t *testing.T) {
	input := `
let newAdder = fn(x) <<
  fn(y) << x + y >>;
>>;

let addTwo = newAdder(2);
addTwo(2);`

	testNumberObject(t, testEval(t, input), 4)
}

func TestBlockValuedBindingsInFunctionBodies(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"let f = fn(a) << let g = fn(b) << a + b >>; g(1) >>; f(2)", 3},
		{"let f = fn() << let h = <<1: 2>>; h[1] >>; f()", 2},
		{"let f = fn(x) << let y = if (x) << 1 >> else << 2 >>; y + 10 >>; f(true)", 11},
		{"let f = fn(x) << let y = if (x) << 1 >> else << 2 >>; y + 10 >>; f(false)", 12},
		{"let f = fn() << return <<1: 5>>; >>; f()[1]", 5},
		{"let f = fn() << return fn(x) << x * 3 >>; >>; f()(4)", 12},
		{"let f = fn(n) << if (n > 0) << let r = fn() << n >>; return r(); >> 0 >>; f(7)", 7},
	}

	for i, tt := range tests {
		evaluated := testEval(t, tt.input)
		if !testNumberObject(t, evaluated, tt.expected) {
			t.Fatalf("tests[%d] - wrong result for %q", i, tt.input)
		}
	}
}

func TestClosureSeesLaterBindings(t *testing.T) {
	input := `
let f = fn() << later * 2 >>;
let later = 21;
f()`

	testNumberObject(t, testEval(t, input), 42)
}

func TestCallDoesNotLeakScope(t *testing.T) {
	input := `
let x = 1;
let f = fn(x) << let y = x; y >>;
f(5);
x`

	testNumberObject(t, testEval(t, input), 1)

	evaluated := testEval(t, "let f = fn() << let inner = 1; inner >>; f(); inner")
	if errObj, ok := evaluated.(*object.Error); !ok || errObj.Message != "identifier not found: inner" {
		t.Fatalf("call scope leaked. got=%s", evaluated.Inspect())
	}
}

func TestRecursion(t *testing.T) {
	input := `
let fib = fn(n) <<
  if (n < 2) << return n >>
  fib(n - 1) + fib(n - 2)
>>;
fib(15)`

	testNumberObject(t, testEval(t, input), 610)
}

func TestStringLiteral(t *testing.T) {
	evaluated := testEval(t, `"Hello World!"`)
	str, ok := evaluated.(*object.String)
	if !ok {
		t.Fatalf("object is not String. got=%T (%+v)", evaluated, evaluated)
	}

	if str.Value != "Hello World!" {
		t.Errorf("String has wrong value. got=%q", str.Value)
	}
}

func TestStringConcatenation(t *testing.T) {
	evaluated := testEval(t, `"Hello" + " " + "World!"`)
	str, ok := evaluated.(*object.String)
	if !ok {
		t.Fatalf("object is not String. got=%T (%+v)", evaluated, evaluated)
	}

	if str.Value != "Hello World!" {
		t.Errorf("String has wrong value. got=%q", str.Value)
	}
}

func TestArrayLiterals(t *testing.T) {
	evaluated := testEval(t, "[1, 2 * 2, 3 + 3]")

	result, ok := evaluated.(*object.Array)
	if !ok {
		t.Fatalf("object is not Array. got=%T (%+v)", evaluated, evaluated)
	}

	if len(result.Elements) != 3 {
		t.Fatalf("array has wrong num of elements. got=%d", len(result.Elements))
	}

	testNumberObject(t, result.Elements[0], 1)
	testNumberObject(t, result.Elements[1], 4)
	testNumberObject(t, result.Elements[2], 6)

	if result.Inspect() != "[1, 4, 6]" {
		t.Fatalf("inspect wrong. got=%q", result.Inspect())
	}
}

func TestArrayIndexExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"[1, 2, 3][0]", 1},
		{"[1, 2, 3][1]", 2},
		{"[1, 2, 3][2]", 3},
		{"let i = 0; [1][i];", 1},
		{"[1, 2, 3][1 + 1];", 3},
		{"let myArray = [1, 2, 3]; myArray[2];", 3},
		{"let myArray = [1, 2, 3]; myArray[0] + myArray[1] + myArray[2];", 6},
		{"let myArray = [1, 2, 3]; let i = myArray[0]; myArray[i]", 2},
		{"[1, 2, 3][3]", nil},
		{"[1, 2, 3][5];", nil},
		{"[1, 2, 3][-1];", nil},
		{"[1, 2, 3][0.5]", nil},
		{"[][0]", nil},
	}

	for _, tt := range tests {
		evaluated := testEval(t, tt.input)
		number, ok := tt.expected.(int)
		if ok {
			testNumberObject(t, evaluated, float64(number))
		} else {
			testNullObject(t, evaluated)
		}
	}
}

func TestHashLiterals(t *testing.T) {
	input := `let two = "two";
<<
  "one": 10 - 9,
  two: 1 + 1,
  "thr" + "ee": 6 / 2,
  4: 4,
  true: 5,
  false: 6
>>`

	evaluated := testEval(t, input)
	result, ok := evaluated.(*object.Hash)
	if !ok {
		t.Fatalf("Eval didn't return Hash. got=%T (%+v)", evaluated, evaluated)
	}

	expected := map[object.HashKey]float64{
		(&object.String{Value: "one"}).HashKey():   1,
		(&object.String{Value: "two"}).HashKey():   2,
		(&object.String{Value: "three"}).HashKey(): 3,
		(&object.Number{Value: 4}).HashKey():       4,
		TRUE.HashKey():                             5,
		FALSE.HashKey():                            6,
	}

	if len(result.Pairs) != len(expected) {
		t.Fatalf("Hash has wrong num of pairs. got=%d", len(result.Pairs))
	}

	for expectedKey, expectedValue := range expected {
		pair, ok := result.Pairs[expectedKey]
		if !ok {
			t.Errorf("no pair for given key in Pairs")
		}

		testNumberObject(t, pair.Value, expectedValue)
	}

	if result.Inspect() != "{one:1, two:2, three:3, 4:4, true:5, false:6}" {
		t.Fatalf("inspect wrong. got=%q", result.Inspect())
	}
}

func TestHashIndexExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{`<<"foo": 5>>["foo"]`, 5},
		{`<<"foo": 5>>["bar"]`, nil},
		{`let key = "foo"; <<"foo": 5>>[key]`, 5},
		{`<<>>["foo"]`, nil},
		{`<<5: 5>>[5]`, 5},
		{`<<true: 5>>[true]`, 5},
		{`<<false: 5>>[false]`, 5},
		{`<<1: 5>>[true]`, nil},
		{`<<true: "a">>[1]`, nil},
		{`<<2: "a">>[4 / 2]`, "a"},
		{`<<0: 1>>[-0]`, 1},
		{`<<1: "a", 1.0: "b">>[1]`, "b"},
	}

	for _, tt := range tests {
		evaluated := testEval(t, tt.input)
		switch expected := tt.expected.(type) {
		case int:
			testNumberObject(t, evaluated, float64(expected))
		case string:
			if evaluated.Inspect() != expected {
				t.Errorf("expected %q, got=%q", expected, evaluated.Inspect())
			}
		default:
			testNullObject(t, evaluated)
		}
	}
}

func TestNumericHashKeysShareSlot(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{`<<2: 1, 4 / 2: 2, 1 + 1: 3>>`, 1},
		{`<<0: 1, -0: 2, 0 * -1: 3>>`, 1},
		{`<<0.5: 1, 1 / 2: 2>>`, 1},
		{`<<1: 1, "1": 2, true: 3>>`, 3},
	}

	for i, tt := range tests {
		hash, ok := testEval(t, tt.input).(*object.Hash)
		if !ok {
			t.Fatalf("tests[%d] - not a Hash", i)
		}
		if hash.Len() != tt.expected {
			t.Fatalf("tests[%d] - expected %d slots, got=%d", i, tt.expected, hash.Len())
		}
	}
}

func TestBuiltinFunctions(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{`round(2.4)`, 2},
		{`round(2.5)`, 3},
		{`round(-2.5)`, -2},
		{`round(-2.6)`, -3},
		{`round(7)`, 7},
		{`round("a")`, "argument to `round` must be NUMBER, got STRING"},
		{`round()`, "wrong number of arguments. got=0, want=1"},
		{`round(1, 2)`, "wrong number of arguments. got=2, want=1"},
		{`floor(2.7)`, 2},
		{`floor(-2.2)`, -3},
		{`ceil(2.2)`, 3},
		{`abs(-4)`, 4},
		{`abs(true)`, "argument to `abs` must be NUMBER, got BOOLEAN"},
		{`min(3, 1, 2)`, 1},
		{`max(3, 1, 2)`, 3},
		{`max(5)`, 5},
		{`max()`, "wrong number of arguments. got=0, want=1+"},
		{`min(1, "a")`, "argument to `min` must be NUMBER, got STRING"},
		{`len("")`, 0},
		{`len("four")`, 4},
		{`len("héllo")`, 5},
		{`len([1, 2, 3])`, 3},
		{`len(<<"a": 1, "b": 2>>)`, 2},
		{`len(1)`, "argument to `len` not supported, got NUMBER"},
		{`len("one", "two")`, "wrong number of arguments. got=2, want=1"},
		{`let round = fn(x) << 99 >>; round(1.2)`, 99},
		{`{stage.vft.Score} * 0 + round(1.6)`, "identifier not found: stage.vft.Score"},
	}

	for _, tt := range tests {
		evaluated := testEval(t, tt.input)

		switch expected := tt.expected.(type) {
		case int:
			testNumberObject(t, evaluated, float64(expected))
		case string:
			errObj, ok := evaluated.(*object.Error)
			if !ok {
				t.Errorf("object is not Error. got=%T (%+v)", evaluated, evaluated)
				continue
			}
			if errObj.Message != expected {
				t.Errorf("wrong error message. expected=%q, got=%q", expected, errObj.Message)
			}
		}
	}
}

func TestBuiltinObject(t *testing.T) {
	evaluated := testEval(t, "round")
	builtin, ok := evaluated.(*object.Builtin)
	if !ok {
		t.Fatalf("object is not Builtin. got=%T", evaluated)
	}
	if builtin.Name != "round" {
		t.Fatalf("builtin name wrong. got=%q", builtin.Name)
	}
	if builtin.Inspect() != "builtin function" {
		t.Fatalf("builtin inspect wrong. got=%q", builtin.Inspect())
	}

	names := BuiltinNames()
	expected := []string{"abs", "ceil", "floor", "len", "max", "min", "round"}
	if len(names) != len(expected) {
		t.Fatalf("BuiltinNames wrong. got=%v", names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Fatalf("BuiltinNames wrong. got=%v", names)
		}
	}
}

func TestScoringExpression(t *testing.T) {
	env := object.NewEnvironment()
	env.Set("stage.vft.Score", &object.Number{Value: 0.75})
	env.Set("Map complete", TRUE)

	input := `let bonus = if ({Map complete}) << 100 >> else << 0 >>;
round({stage.vft.Score} * 70 + bonus)`
	l := lexer.New(input)
	p := parser.New(l, input)
	program := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("parser errors: %v", p.Errors())
	}

	testNumberObject(t, Eval(program, env), 153)
}

func TestEmptyProgram(t *testing.T) {
	testNullObject(t, testEval(t, ""))
	testNullObject(t, testEval(t, "let a = 1;"))
}

func TestRenderingRoundTrip(t *testing.T) {
	inputs := []string{
		"7 / 2;",
		"1 + 2 * 3 - -4 / 2",
		"let {stage.vft.Score} = 1; {stage.vft.Score} + 1;",
		"let {Map complete} = 2; {Map complete};",
		"if (1 == 2) << 10 >> else << 20 >>;",
		"let add = fn(a, b) << return a + b; >>; add(1, add(2, 3))",
		`<<"a": [1, 2, 3], 2: "two">>["a"][2]`,
		`!(1 < 2) == false`,
		`"ab" + "cd"`,
		`[1, 2, 3][5]`,
		`1 + "a"`,
		"let f = fn(x) << if (x > 1) << return x * f(x - 1) >> 1 >>; f(5)",
	}

	for i, input := range inputs {
		l := lexer.New(input)
		p := parser.New(l, input)
		program := p.ParseProgram()
		if len(p.Errors()) != 0 {
			t.Fatalf("tests[%d] - parser errors: %v", i, p.Errors())
		}

		rendered := program.String()
		rl := lexer.New(rendered)
		rp := parser.New(rl, rendered)
		reparsed := rp.ParseProgram()
		if len(rp.Errors()) != 0 {
			t.Fatalf("tests[%d] - rendered program %q has parser errors: %v", i, rendered, rp.Errors())
		}

		first := Eval(program, object.NewEnvironment())
		again := Eval(reparsed, object.NewEnvironment())
		if first.Inspect() != again.Inspect() || first.Type() != again.Type() {
			t.Fatalf("tests[%d] - round trip changed result. first=%s, again=%s", i, first.Inspect(), again.Inspect())
		}
	}
}
