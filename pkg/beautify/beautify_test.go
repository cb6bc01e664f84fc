package beautify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSFormatter_Format(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "function_body",
			src:  `function a(){return 1}`,
			want: "function a() {\n  return 1\n}",
		},
		{
			name: "collapsed_else",
			src:  `var s="a;{b}";if(x){y()}else{z()}`,
			want: "var s = \"a;{b}\";\nif (x) {\n  y()\n} else {\n  z()\n}",
		},
		{
			name: "regex_literal_untouched",
			src:  `var r=/a;{b}/g;x()`,
			want: "var r = /a;{b}/g;\nx()",
		},
		{
			name: "template_literal_untouched",
			src:  "let t=`a;${b}{c}`;f()",
			want: "let t = `a;${b}{c}`;\nf()",
		},
		{
			name: "for_header_stays_on_one_line",
			src:  `for(var i=0;i<n;i++){f(i)}`,
			want: "for (var i = 0; i < n; i++) {\n  f(i)\n}",
		},
		{
			name: "blank_lines_capped",
			src:  "a()\n\n\n\n\nb()",
			want: "a()\n\nb()",
		},
		{
			name: "empty_braces_stay_together",
			src:  `const o={};g(()=>{})`,
			want: "const o = {};\ng(() => {})",
		},
		{
			name: "trailing_newline_kept",
			src:  "a();\n",
			want: "a();\n",
		},
		{
			name: "blank_input",
			src:  "  \n",
			want: "  \n",
		},
	}

	f := New(DefaultOptions())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Format(context.Background(), tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSFormatter_PreservesTokens(t *testing.T) {
	src := `const Ke=Ye("analyticsEnabled",{fallback:false});Mb("logIn",()=>{});` +
		`async function h(e){try{const r=await fetch("http://localhost:9999/sentry",{method:"POST"});return r.ok?r:null}catch(o){console.warn(o)}finally{n--}}` +
		"const tpl=`x ${a+b} y`,re=/\\/api\\/(v\\d+)/i;do{x++}while(x<3);label:for(const k in obj){if(!k)continue label}"

	f := New(DefaultOptions())
	got, err := f.Format(context.Background(), src)
	require.NoError(t, err)

	before, err := tokenize(context.Background(), src)
	require.NoError(t, err)
	after, err := tokenize(context.Background(), got)
	require.NoError(t, err, "formatted output should still parse")

	require.Equal(t, len(before), len(after))
	for i := range before {
		assert.Equal(t, before[i].text, after[i].text, "token %d", i)
	}
}

func TestJSFormatter_SyntaxError(t *testing.T) {
	f := New(DefaultOptions())
	_, err := f.Format(context.Background(), `function (`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax errors")
}

func TestNew_Defaults(t *testing.T) {
	f := New(Options{})
	assert.Equal(t, 2, f.opts.IndentSize)
	assert.Equal(t, 1, f.opts.MaxPreserveNewlines)
}
