package wpml

import(
	"archive/zip"
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/skyloom/wayline"
)

// {{{ Build

// Build emits a flight as a mission KMZ: wpmz/template.kml (mission
// config) plus wpmz/waylines.wpml (the placemark sequence), zipped at
// DEFLATE level 9. The archive is assembled whole in memory; callers
// get one blob or one error, never a partial container.
func Build(f *wayline.Flight, opt Options) ([]byte, error) {
	if len(f.Waypoints) == 0 {
		return nil, wayline.NoWaypointsError{Filename: f.Name}
	}

	template,err := docBytes(templateDoc(opt))
	if err != nil { return nil, err }

	waylines,err := docBytes(waylinesDoc(f, opt))
	if err != nil { return nil, err }

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	members := []struct{
		path string
		body []byte
	}{
		{TemplatePath, template},
		{WaylinesPath, waylines},
	}
	for _,m := range members {
		w,err := zw.Create(m.path)
		if err != nil { return nil, fmt.Errorf("kmz member %s: %v", m.path, err) }
		if _,err := w.Write(m.body); err != nil {
			return nil, fmt.Errorf("kmz member %s: %v", m.path, err)
		}
	}
	if err := zw.Close(); err != nil { return nil, fmt.Errorf("kmz close: %v", err) }

	return buf.Bytes(), nil
}

// }}}
// {{{ newKmlDoc, docBytes

func newKmlDoc() (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	kml := doc.CreateElement("kml")
	kml.CreateAttr("xmlns", KmlNamespace)
	kml.CreateAttr("xmlns:wpml", WpmlNamespace)

	return doc, kml.CreateElement("Document")
}

func docBytes(doc *etree.Document) ([]byte, error) {
	doc.Indent(2)
	return doc.WriteToBytes()
}

// }}}
// {{{ missionConfig

// The missionConfig block appears in both documents, identically.
func missionConfig(parent *etree.Element, opt Options) {
	drone := DroneByKey(opt.DroneType)

	cfg := parent.CreateElement("wpml:missionConfig")
	addText(cfg, "wpml:flyToWaylineMode", "safely")
	addText(cfg, "wpml:finishAction", "goHome")
	addText(cfg, "wpml:exitOnRCLost", opt.exitOnRCLost())
	addText(cfg, "wpml:executeRCLostAction", "goBack")
	addFloat(cfg, "wpml:globalTransitionalSpeed", opt.MissionSpeedMs)

	info := cfg.CreateElement("wpml:droneInfo")
	addInt(info, "wpml:droneEnumValue", drone.EnumValue)
	addInt(info, "wpml:droneSubEnumValue", drone.SubEnumValue)
}

// }}}
// {{{ templateDoc

func templateDoc(opt Options) *etree.Document {
	doc,docEl := newKmlDoc()

	now := time.Now().UnixMilli()
	addText(docEl, "wpml:author", "wayline")
	addText(docEl, "wpml:createTime", strconv.FormatInt(now, 10))
	addText(docEl, "wpml:updateTime", strconv.FormatInt(now, 10))

	missionConfig(docEl, opt)

	folder := docEl.CreateElement("Folder")
	addText(folder, "wpml:templateType", "waypoint")
	addInt(folder, "wpml:templateId", 0)

	sys := folder.CreateElement("wpml:waylineCoordinateSysParam")
	addText(sys, "wpml:coordinateMode", "WGS84")
	addText(sys, "wpml:heightMode", "relativeToStartPoint")

	addFloat(folder, "wpml:autoFlightSpeed", opt.MissionSpeedMs)

	return doc
}

// }}}
// {{{ waylinesDoc

func waylinesDoc(f *wayline.Flight, opt Options) *etree.Document {
	doc,docEl := newKmlDoc()

	missionConfig(docEl, opt)

	folder := docEl.CreateElement("Folder")
	addInt(folder, "wpml:templateId", 0)
	addText(folder, "wpml:executeHeightMode", "relativeToStartPoint")
	addInt(folder, "wpml:waylineId", 0)
	addFloat(folder, "wpml:autoFlightSpeed", opt.MissionSpeedMs)

	for i := range f.Waypoints {
		addPlacemark(folder, f, i, opt)
	}

	return doc
}

// }}}
// {{{ addPlacemark

func addPlacemark(folder *etree.Element, f *wayline.Flight, i int, opt Options) {
	wp := f.Waypoints[i]
	last := i == len(f.Waypoints)-1

	pm := folder.CreateElement("Placemark")

	// Longitude first. Yes, really.
	point := pm.CreateElement("Point")
	addText(point, "coordinates", fmt.Sprintf("%s,%s",
		strconv.FormatFloat(wp.Long, 'f', -1, 64),
		strconv.FormatFloat(wp.Lat, 'f', -1, 64)))

	addInt(pm, "wpml:index", i)
	addFloat(pm, "wpml:executeHeight", wp.AltitudeFt * wayline.MetersPerFoot)

	speed := opt.MissionSpeedMs
	if wp.SpeedMs != nil && *wp.SpeedMs > 0 { speed = *wp.SpeedMs }
	addFloat(pm, "wpml:waypointSpeed", speed)

	addHeadingParam(pm, f, wp, opt)
	addTurnParam(pm, last)

	if opt.AllowStraightLines {
		addInt(pm, "wpml:useStraightLine", 1)
	} else {
		addInt(pm, "wpml:useStraightLine", 0)
	}

	// Action groups, ids sequential within the waypoint: the first
	// waypoint levels the gimbal absolutely; every waypoint except the
	// last eases the gimbal toward the next waypoint's pitch; a positive
	// photo interval adds a repeating capture.
	groupId := 0
	if i == 0 {
		addGimbalRotateGroup(pm, groupId, i, wp.Pitch())
		groupId++
	}
	if !last {
		addGimbalEvenlyGroup(pm, groupId, i, f.Waypoints[i+1].Pitch())
		groupId++
	}
	if wp.PhotoTimeInterval != nil && *wp.PhotoTimeInterval > 0 {
		addPhotoGroup(pm, groupId, i, *wp.PhotoTimeInterval)
		groupId++
	}
}

// }}}
// {{{ addHeadingParam

func addHeadingParam(pm *etree.Element, f *wayline.Flight, wp wayline.Waypoint, opt Options) {
	mode := "manually"
	switch opt.HeadingMode {
	case HeadingManual:        mode = "manually"
	case HeadingFollowWayline: mode = "followWayline"
	default: // poi_or_interpolate
		if f.HasPoi() { mode = "towardPOI" }
	}

	poiStr := "0.000000,0.000000,0.000000"
	if f.HasPoi() {
		poiStr = fmt.Sprintf("%.6f,%.6f,%.6f",
			f.Poi.Lat, f.Poi.Long, f.PoiAltitudeFt() * wayline.MetersPerFoot)
	}

	hp := pm.CreateElement("wpml:waypointHeadingParam")
	addText(hp, "wpml:waypointHeadingMode", mode)
	addFloat(hp, "wpml:waypointHeadingAngle", wp.Heading())
	addText(hp, "wpml:waypointPoiPoint", poiStr)
	addInt(hp, "wpml:waypointHeadingAngleEnable", 0) // always 0, as observed in the field
	addText(hp, "wpml:waypointHeadingPathMode", "followBadArc")
}

// }}}
// {{{ addTurnParam

// Pass through every waypoint except the last; stop at the last so the
// aircraft can finish its approach without overshoot.
func addTurnParam(pm *etree.Element, last bool) {
	mode := "toPointAndPassWithContinuityCurvature"
	if last { mode = "toPointAndStopWithContinuityCurvature" }

	tp := pm.CreateElement("wpml:waypointTurnParam")
	addText(tp, "wpml:waypointTurnMode", mode)
	addInt(tp, "wpml:waypointTurnDampingDist", 0)
}

// }}}
// {{{ action groups

func newActionGroup(pm *etree.Element, groupId, startIndex, endIndex int, triggerType string) *etree.Element {
	g := pm.CreateElement("wpml:actionGroup")
	addInt(g, "wpml:actionGroupId", groupId)
	addInt(g, "wpml:actionGroupStartIndex", startIndex)
	addInt(g, "wpml:actionGroupEndIndex", endIndex)
	addText(g, "wpml:actionGroupMode", "sequence")

	trigger := g.CreateElement("wpml:actionTrigger")
	addText(trigger, "wpml:actionTriggerType", triggerType)

	return g
}

// The initial absolute gimbal set, first waypoint only.
func addGimbalRotateGroup(pm *etree.Element, groupId, wpIndex int, pitchDeg float64) {
	g := newActionGroup(pm, groupId, wpIndex, wpIndex, "reachPoint")

	action := g.CreateElement("wpml:action")
	addInt(action, "wpml:actionId", 0)
	addText(action, "wpml:actionActuatorFunc", "gimbalRotate")

	param := action.CreateElement("wpml:actionActuatorFuncParam")
	addText(param, "wpml:gimbalHeadingYawBase", "aircraft")
	addText(param, "wpml:gimbalRotateMode", "absoluteAngle")
	addInt(param, "wpml:gimbalPitchRotateEnable", 1)
	addFloat(param, "wpml:gimbalPitchRotateAngle", pitchDeg)
	addInt(param, "wpml:gimbalRollRotateEnable", 0)
	addInt(param, "wpml:gimbalRollRotateAngle", 0)
	addInt(param, "wpml:gimbalYawRotateEnable", 0)
	addInt(param, "wpml:gimbalYawRotateAngle", 0)
	addInt(param, "wpml:gimbalRotateTimeEnable", 0)
	addInt(param, "wpml:gimbalRotateTime", 0)
	addInt(param, "wpml:payloadPositionIndex", 0)
}

// Smooth pitch interpolation toward the next waypoint, spanning the leg.
func addGimbalEvenlyGroup(pm *etree.Element, groupId, wpIndex int, nextPitchDeg float64) {
	g := newActionGroup(pm, groupId, wpIndex, wpIndex+1, "betweenAdjacentPoints")

	action := g.CreateElement("wpml:action")
	addInt(action, "wpml:actionId", 0)
	addText(action, "wpml:actionActuatorFunc", "gimbalEvenlyRotate")

	param := action.CreateElement("wpml:actionActuatorFuncParam")
	addFloat(param, "wpml:gimbalPitchRotateAngle", nextPitchDeg)
	addInt(param, "wpml:payloadPositionIndex", 0)
}

func addPhotoGroup(pm *etree.Element, groupId, wpIndex int, intervalSec float64) {
	g := newActionGroup(pm, groupId, wpIndex, wpIndex, "multipleTiming")
	if trigger := g.SelectElement("wpml:actionTrigger"); trigger != nil {
		addFloat(trigger, "wpml:actionTriggerParam", intervalSec)
	}

	action := g.CreateElement("wpml:action")
	addInt(action, "wpml:actionId", 0)
	addText(action, "wpml:actionActuatorFunc", "takePhoto")

	param := action.CreateElement("wpml:actionActuatorFuncParam")
	addInt(param, "wpml:payloadPositionIndex", 0)
	addInt(param, "wpml:useGlobalPayloadLensIndex", 0)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
