package host

import (
	"bytes"
	"net/http"

	"github.com/vango-dev/dropdown/pkg/dropdown"
	"github.com/vango-dev/dropdown/pkg/render"
	"github.com/vango-dev/dropdown/pkg/vdom"
)

// RootID is the id of the element the client swaps rendered markup into.
const RootID = "dropdown-root"

const pageCSS = `body{font-family:system-ui,sans-serif;margin:3rem}
.dropdown{position:relative;display:inline-block;min-width:12rem}
.dropdown__current{display:flex;justify-content:space-between;align-items:center;width:100%;padding:.5rem .75rem;border:1px solid #bbb;border-radius:4px;background:#fff;cursor:pointer}
.dropdown__current--open{border-color:#4a7dff}
.dropdown__icon{transition:transform .15s}
.dropdown__icon--open{transform:rotate(180deg)}
.dropdown__menu{position:absolute;left:0;right:0;margin-top:2px;border:1px solid #bbb;border-radius:4px;background:#fff}
.dropdown__item{display:block;width:100%;padding:.5rem .75rem;border:0;background:none;text-align:left;cursor:pointer}
.dropdown__item:hover{background:#eef2ff}`

const clientJS = `(function(){
var root=document.getElementById("` + RootID + `");
var ws=new WebSocket((location.protocol==="https:"?"wss://":"ws://")+location.host+"/ws");
ws.onmessage=function(e){
var f=JSON.parse(e.data);
if(f.type==="render"){root.innerHTML=f.html;root.dataset.selected=f.selected||"";}
else if(f.type==="error"){console.warn("dropdown",f.code,f.message);}
};
root.addEventListener("click",function(e){
var el=e.target.closest("[data-on-click]");
if(!el||!root.contains(el)||ws.readyState!==1)return;
ws.send(JSON.stringify({hid:el.getAttribute("data-hid"),event:"click"}));
});
})();`

// handlePage renders the initial, closed widget without hydration IDs. The
// live session replaces it with interactive markup once the socket opens.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	widget := dropdown.New(nil, dropdown.Props{
		CurrentOption: s.config.Current,
		Options:       s.config.Options,
		ClassName:     s.config.ClassName,
	})
	defer widget.Dispose()

	var buf bytes.Buffer
	renderer := render.NewRenderer(render.RendererConfig{SkipHIDs: true})
	err := renderer.RenderPage(&buf, render.PageData{
		Title:   s.config.Title,
		Styles:  []string{pageCSS},
		Scripts: []string{clientJS},
		Body: vdom.Main(
			vdom.ID(RootID),
			vdom.Data("selected", s.config.Current),
			widget,
		),
	})
	if err != nil {
		s.logger.Error("page render failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
