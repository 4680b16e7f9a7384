package timer

import (
	"encoding/json"
	"fmt"
)

// ExpressionVersion identifies the injected extraction script. Bump it when
// the scan order or the in-page pattern changes so mismatches are traceable
// from verbose logs.
const ExpressionVersion = 1

// expressionTemplate is the script evaluated inside the page via
// Runtime.evaluate. It must always resolve to a string. Scan order:
//
//  1. Elements with an inline style combining font-variant-numeric and
//     tabular-nums (how the app renders its countdown). First such element
//     with a pattern match wins; a non-empty non-matching text is returned
//     verbatim so the local matcher can have a second look.
//  2. The caller-supplied CSS selector, if any.
//  3. The full body innerText.
//
// The %s placeholder receives the selector as a JSON string literal, or null.
const expressionTemplate = `(function(){
  var r=/(?:\d+:)?[0-5]?\d:[0-5]\d/;
  function fromInlineStyle(){
    try{
      var nodes=document.querySelectorAll('[style]');
      for(var i=0;i<nodes.length;i++){
        var el=nodes[i];
        var st=(el.getAttribute('style')||'').toLowerCase();
        if(st.includes('font-variant-numeric') && st.includes('tabular-nums')){
          var txt=(el.textContent||'').trim();
          var m=txt.match(r);
          if(m) return m[0];
          if(txt) return txt;
        }
      }
    }catch(e){}
    return '';
  }
  var s=%s;
  var t=fromInlineStyle(); if(t) return t;
  if(s){ var el=document.querySelector(s); if(el){ var txt=(el.textContent||'').trim(); var m=txt.match(r); if(m) return m[0]; if(txt) return txt; } }
  if(document && document.body){ var b=(document.body.innerText||'').trim(); var m=b.match(r); if(m) return m[0]; return b; }
  return '';
})()`

// Expression renders the extraction script with the optional CSS selector
// baked in. An empty selector disables step 2 of the scan.
func Expression(selector string) string {
	lit := "null"
	if selector != "" {
		b, err := json.Marshal(selector)
		if err == nil {
			lit = string(b)
		}
	}
	return fmt.Sprintf(expressionTemplate, lit)
}
